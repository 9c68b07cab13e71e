package reservation

type GuestInfoInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

type CreateReservationRequest struct {
	RestaurantID string          `json:"restaurantId" binding:"required,uuid"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string          `json:"time" binding:"required,datetime=15:04"`
	PartySize    int             `json:"partySize" binding:"required,min=1,max=100"`
	Notes        *string         `json:"notes"`
	GuestInfo    *GuestInfoInput `json:"guestInfo"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
