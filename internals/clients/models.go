package clients

// Remote records are never persisted locally; only identity ids captured at
// creation time are stored, display fields are fetched live on every read.

type Customer struct {
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	CustomerCode string `json:"customerCode"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

type Manager struct {
	UserID     int64  `json:"userId"`
	EmpNo      string `json:"empNo"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type Inquiry struct {
	InquiryID  int64  `json:"inquiryId"`
	CustomerID int64  `json:"customerId"`
	Progress   string `json:"progress"`
}

type FileInfo struct {
	OriginName     string `json:"originName"`
	StoredFilePath string `json:"storedFilePath"`
}
