package location

type CreateLocationReq struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
}

type EmployeeReq struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type AddInventoryReq struct {
	MovieID  int64 `json:"movie_id" validate:"required,gt=0"`
	FormatID int64 `json:"format_id" validate:"required,gt=0"`
	Count    int   `json:"count" validate:"required,gt=0"`
}
