package entity

type Category struct {
	Base
	Name        string `db:"name"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
}
