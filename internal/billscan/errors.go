package billscan

import "errors"

var (
	// ErrUnsupportedFile indicates a non-PDF upload.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrUnreadableBill indicates a PDF that could not be parsed.
	ErrUnreadableBill = errors.New("unreadable bill")
	// ErrNoAmountFound indicates no monthly charge was detected in the text.
	ErrNoAmountFound = errors.New("no amount found in bill")
)
