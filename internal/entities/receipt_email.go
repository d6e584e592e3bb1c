package entities

type ReceiptEmailData struct {
	TicketCode         string
	VehicleReg         string
	SpotID             int
	EntryTimeFormatted string
	ExitTimeFormatted  string
	DurationMinutes    int
	Price              float64
	CurrentYear        int
}
