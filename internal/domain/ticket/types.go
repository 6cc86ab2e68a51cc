package ticket

type Status string

const (
	StatusValid     Status = "valid"
	StatusUsed      Status = "used"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusValid, StatusUsed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}
