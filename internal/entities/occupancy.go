package entities

type CategoryOccupancy struct {
	Category      string `json:"category"`
	TotalSpots    int    `json:"total_spots"`
	OccupiedSpots int    `json:"occupied_spots"`
	FreeSpots     int    `json:"free_spots"`
}

type OccupancyResponse struct {
	Categories []CategoryOccupancy `json:"categories"`
}
