package listing

// Form carries the create/edit listing form fields.
type Form struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	ImageURL    string `form:"image"`
	Price       int64  `form:"price" binding:"required,min=0"`
	Location    string `form:"location" binding:"required"`
	Country     string `form:"country" binding:"required"`
}
