package session

// Role é o nível administrativo do policial autenticado.
type Role int

const (
	RoleTownOfficer Role = 1
	RoleZoneAdmin   Role = 2
	RoleRegionAdmin Role = 3
	RoleRootAdmin   Role = 4
)

// roleLabels é o único mapeamento canônico de papel para rótulo; nenhuma
// visão traduz papéis por conta própria.
var roleLabels = map[Role]string{
	RoleTownOfficer: "Town Officer",
	RoleZoneAdmin:   "Zone Admin",
	RoleRegionAdmin: "Region Admin",
	RoleRootAdmin:   "Root Admin",
}

// Label devolve o rótulo de exibição do papel.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return "Unknown"
}

// Valid indica se o papel é reconhecido.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Identity espelha o policial autenticado devolvido pelo backend no login.
type Identity struct {
	OfficerID   string `json:"officerId"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Role        Role   `json:"role"`
	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	TownID      int64  `json:"townId"`
}
