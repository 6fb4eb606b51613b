package entity

type Banner struct {
	Base
	Title  string `db:"title"`
	Image  string `db:"image"`
	IsShow bool   `db:"is_show"`
}
