package models

// AssetManagementCompany is the administrator of one or more funds.
// Code is the identifier the source site assigns; Slug is derived once on insert.
type AssetManagementCompany struct {
	Base
	Code string `gorm:"not null;uniqueIndex" json:"code"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"not null;uniqueIndex" json:"slug"`

	Funds []Fund `gorm:"foreignKey:AMCID" json:"funds,omitempty"`
}

// TableName returns the table backing AssetManagementCompany.
func (AssetManagementCompany) TableName() string {
	return "mutual_funds_assetmanagementcompany"
}
