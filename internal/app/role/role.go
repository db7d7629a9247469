package role

// Role роль пользователя, передаётся в JWT
type Role int

const (
	Viewer    Role = iota // только просмотр плана и закупок
	Buyer                 // снабженец: фиксирует фактические закупки
	Estimator             // сметчик: формирует план закупок
	Admin
)

func (r Role) String() string {
	switch r {
	case Viewer:
		return "viewer"
	case Buyer:
		return "buyer"
	case Estimator:
		return "estimator"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}
