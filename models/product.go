package models

import (
	"errors"
	"fmt"
	"time"
)

// Product categories sold by the store.
const (
	CategoriaInfantil  = "infantil"
	CategoriaMasculino = "masculino"
	CategoriaFeminino  = "feminino"
	CategoriaTermicas  = "termicas"
)

var validCategorias = map[string]bool{
	CategoriaInfantil:  true,
	CategoriaMasculino: true,
	CategoriaFeminino:  true,
	CategoriaTermicas:  true,
}

type Product struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Preco      float64 `gorm:"not null" json:"preco"`
	Quantidade int64   `json:"quantidade"`
	Categoria  string  `gorm:"type:VARCHAR(20);not null" json:"categoria"`
	Material   string  `json:"material"`
	CorPadrao  string  `json:"cor_padrao"`
	Titulo     string  `json:"titulo"`
	Descricao  string  `json:"descricao"`

	// Dimensions in centimeters; optional, but positive when present.
	Altura      *float64 `json:"altura"`
	Comprimento *float64 `json:"comprimento"`
	Largura     *float64 `json:"largura"`

	// Images are owned by the product and removed with it.
	Imagens []ProductImage `gorm:"foreignKey:ProdutoID;constraint:OnDelete:CASCADE" json:"imagens"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the field-level invariants before the product touches the
// database.
func (p *Product) Validate() error {
	if p.Preco <= 0 {
		return errors.New("preco must be greater than zero")
	}
	if p.Quantidade < 0 {
		return errors.New("quantidade cannot be negative")
	}
	if !validCategorias[p.Categoria] {
		return fmt.Errorf("invalid categoria %q", p.Categoria)
	}
	for name, dim := range map[string]*float64{
		"altura":      p.Altura,
		"comprimento": p.Comprimento,
		"largura":     p.Largura,
	} {
		if dim != nil && *dim <= 0 {
			return fmt.Errorf("%s must be greater than zero", name)
		}
	}
	return nil
}

// ProductImage is a stored object URL owned by a product.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProdutoID uint      `gorm:"not null;index" json:"id_produto"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
