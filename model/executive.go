package model

type Executive struct {
	DTO
	FirstName             string   `gorm:"not null" validate:"required" json:"firstname"`
	LastName              string   `gorm:"not null" validate:"required" json:"lastname"`
	Email                 string   `gorm:"uniqueIndex" json:"email"`
	PhoneNumber           string   `json:"phoneNumber"`
	IssuerCode            string   `gorm:"size:10;uniqueIndex;not null" json:"issuerCode"`
	AllowCouponGeneration bool     `gorm:"not null;default:false" json:"allowCouponGeneration"`
	AllowSaleRecording    bool     `gorm:"not null;default:false" json:"allowSaleRecording"`
	IsActive              bool     `gorm:"not null;default:true" json:"isActive"`
	TotalIssued           int64    `gorm:"not null;default:0" json:"totalIssued"`
	TotalSold             int64    `gorm:"not null;default:0" json:"totalSold"`
	TotalUnsold           int64    `gorm:"not null;default:0" json:"totalUnsold"`
	AccountId             *uint    `json:"accountId"`
	Account               *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:AccountId" json:"account,omitempty"`
}

type Executives []Executive

type CreateExecutiveInput struct {
	// Executive profile
	Firstname   string `json:"firstname" validate:"required,min=1"`
	Lastname    string `json:"lastname" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=9"`
	IssuerCode  string `json:"issuerCode" validate:"required,min=4,max=10,alphanum"`

	// Linked account
	Username string `json:"username" validate:"required,min=4"`
	Password string `json:"password" validate:"required,min=6"`

	AllowCouponGeneration bool `json:"allowCouponGeneration"`
	AllowSaleRecording    bool `json:"allowSaleRecording"`
}

type UpdateExecutiveInput struct {
	FirstName   *string `json:"firstname" validate:"omitempty,min=1"`
	LastName    *string `json:"lastname" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,min=9"`
	// IssuerCode stays immutable: issued coupons reference it.
}

type UpdateCapabilitiesInput struct {
	AllowCouponGeneration *bool `json:"allowCouponGeneration"`
	AllowSaleRecording    *bool `json:"allowSaleRecording"`
}

type FilterExecutive struct {
	Pagination
	SearchKey string `json:"searchKey" query:"searchKey"`
	Active    *bool  `json:"active" query:"active"`
}
