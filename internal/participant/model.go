package participant

type JoinRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type UpdateWishlistRequest struct {
	Wishlist string `json:"wishlist"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type InviteRequest struct {
	Emails []string `json:"emails" binding:"required"`
}

// InviteResult partitions the requested addresses.
type InviteResult struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}
