package models

// Address is a delivery address in a user's address book. At most one address
// per user carries the active flag; the activate operation enforces this.
type Address struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64  `gorm:"column:user_id;not null;index"`
	HouseNumber string `gorm:"column:house_number"`
	Street      string `gorm:"column:street;not null"`
	Barangay    string `gorm:"column:barangay"`
	City        string `gorm:"column:city;not null"`
	Province    string `gorm:"column:province"`
	IsActive    bool   `gorm:"column:is_active;not null;default:false"`
}
