package model

type Account struct {
	DTO
	Username  string     `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password  string     `gorm:"not null" validate:"required,min=6,max=50" json:"-"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	Role      string     `json:"role"`
	Executive *Executive `gorm:"foreignKey:AccountId" json:"executive,omitempty"`
}

type Accounts []Account

type CreateAccountInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EXECUTIVE"`
}

type AdminChangePassword struct {
	AccountId      uint   `json:"accountId" validate:"required"`
	NewPassword    string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}
