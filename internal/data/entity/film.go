package entity

type Film struct {
	BaseSimple
	Title string `db:"title"`
}
