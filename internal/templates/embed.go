// Package templates holds the notification templates compiled into the
// binary, so sending does not depend on the process working directory.
package templates

import _ "embed"

//go:embed receipt_email.html
var ReceiptEmailHTML string
