package model

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=64"`
}
