package customer

type CreateCustomerReq struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     string  `json:"address" validate:"required"`
	City        string  `json:"city" validate:"required"`
	PostCode    string  `json:"post_code" validate:"required"`
}

type AddressReq struct {
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	PostCode string `json:"post_code" validate:"required"`
}

type SubscribeReq struct {
	MembershipType string `json:"membership_type" validate:"required,oneof=GOLD SILVER BRONZE"`
}
