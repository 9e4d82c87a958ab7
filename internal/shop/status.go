package shop

type Status string

const (
	StatusInProcess Status = "in_process"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// Valid hanya cek membership enum; transisi status tidak divalidasi.
func (s Status) Valid() bool {
	switch s {
	case StatusInProcess, StatusShipped, StatusDelivered:
		return true
	}
	return false
}
