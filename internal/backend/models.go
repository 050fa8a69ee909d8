package backend

// Option é um item de lista dependente {id, nome}, usado nos seletores
// região→zona→cidade.
type Option struct {
	ID   int64
	Name string
}

// TownInfo descreve a cadeia de ancestrais de uma cidade.
type TownInfo struct {
	TownID     int64
	ZoneID     int64
	RegionID   int64
	TownName   string
	ZoneName   string
	RegionName string
}

// Officer espelha o registro de policial devolvido pelo backend.
type Officer struct {
	ID          string `json:"policeOfficerId"`
	FirstName   string `json:"policeOfficerFname"`
	MiddleName  string `json:"policeOfficerMname"`
	LastName    string `json:"policeOfficerLname"`
	PhoneNumber string `json:"policeOfficerPhoneNumber"`
	Email       string `json:"policeOfficerEmail"`
	Role        int    `json:"role"`
	StationID   string `json:"policeStationId"`
	StationName string `json:"nameOfPoliceStation"`
	TownID      int64  `json:"townId"`
	ImagePath   string `json:"imagePath"`
}

// Post espelha o registro de desaparecido devolvido pelo backend.
type Post struct {
	ID           int64  `json:"postId"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Age          *int   `json:"age"`
	Gender       string `json:"gender"`
	Description  string `json:"postDescription"`
	LastLocation string `json:"lastLocation"`
	TownID       int64  `json:"townId"`
	SubCityID    int64  `json:"subCityId"`
	OfficerID    string `json:"policeOfficerId"`
	StationID    string `json:"policeStationId"`
	PostStatus   int    `json:"postStatus"`
	PersonStatus string `json:"personStatus"`
	ImagePath    string `json:"imagePath"`
	CreatedAt    string `json:"created_at"`
}

// PostDraft reúne os campos enviados ao criar/editar um post.
type PostDraft struct {
	TownID       int64
	SubCityID    int64
	Description  string
	FirstName    string
	MiddleName   string
	LastName     string
	Age          *int
	LastLocation string
	Gender       string
	OfficerID    string
	StationID    string
	PostStatus   int
	PersonStatus string
}

// Station espelha o registro de delegacia devolvido pelo backend.
type Station struct {
	ID             string `json:"policeStationId"`
	Name           string `json:"nameOfPoliceStation"`
	PhoneNumber    string `json:"policeStationPhoneNumber"`
	SecPhoneNumber string `json:"secPoliceStationPhoneNumber"`
	Logo           string `json:"policeStationLogo"`
	TownID         int64  `json:"townId"`
	TownName       string `json:"townName"`
	ZoneName       string `json:"zoneName"`
	RegionName     string `json:"regionName"`
}

// StationDraft reúne os campos de cadastro de delegacia.
type StationDraft struct {
	Name           string
	PhoneNumber    string
	SecPhoneNumber string
	RootID         int64
	TownID         int64
}

// Report espelha o relatório de escalonamento devolvido pelo backend.
type Report struct {
	AlertID      int64  `json:"alertId"`
	PostID       int64  `json:"postId"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	LastLocation string `json:"lastLocation"`
	Description  string `json:"reportDescription"`
	Priority     int    `json:"priority"`
	Unread       int    `json:"isread"`
	PersonStatus string `json:"personStatus"`
	ImagePath    string `json:"imagePath"`
	LocalStation string `json:"localPoliceStationId"`
	PostStation  string `json:"postPoliceStationId"`
	StationName  string `json:"nameOfPoliceStation"`
	CreatedAt    string `json:"created_at"`
}

// ReportDraft reúne os campos para abrir um relatório de escalonamento.
type ReportDraft struct {
	PostID      int64
	TownID      int64
	SubCityID   int64
	Description string
	StationID   string
	Priority    int
}

// Criminal espelha o registro de procurado devolvido pelo backend.
type Criminal struct {
	ID         int64  `json:"criminalId"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	FaceColor  string `json:"faceColor"`
	HairColor  string `json:"hairColor"`
	Height     string `json:"height"`
	BodyType   string `json:"bodyType"`
	Age        *int   `json:"age"`
	Gender     string `json:"gender"`
	FileNumber string `json:"fileNumber"`
	StationID  string `json:"policeStationId"`
	Photo      string `json:"photo"`
	CreatedAt  string `json:"created_at"`
}

// CriminalDraft reúne os campos de cadastro de procurado.
type CriminalDraft struct {
	FirstName  string
	MiddleName string
	LastName   string
	FaceColor  string
	HairColor  string
	Height     string
	BodyType   string
	Age        *int
	Gender     string
	FileNumber string
	StationID  string
}

// Message espelha uma mensagem trocada entre delegacias.
type Message struct {
	ID         int64  `json:"messageId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Read       int    `json:"isread"`
	CreatedAt  string `json:"created_at"`
}

// OfficerDraft reúne os campos de cadastro/edição de policial.
type OfficerDraft struct {
	FirstName   string
	MiddleName  string
	LastName    string
	PhoneNumber string
	Email       string
	Password    string
	Role        int
	StationID   string
	TownID      int64
}
