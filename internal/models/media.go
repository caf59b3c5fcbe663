package models

type MediaType struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
