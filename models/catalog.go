package models

// Cart is the subtotal snapshot a checkout starts from. Once an order
// references it the row is never mutated again.
type Cart struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Subtotal float64 `json:"subtotal"`
}

// Color available for product customization. RGB is optional.
type Color struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"not null" json:"nome"`
	RGB  string `json:"rgb"`
}

// Customization links a product to a color. Both sides must exist; the pair
// is the primary key.
type Customization struct {
	ProdutoID uint `gorm:"primaryKey" json:"id_produto"`
	CorID     uint `gorm:"primaryKey" json:"id_cor"`

	Produto Product `gorm:"foreignKey:ProdutoID;constraint:OnDelete:CASCADE" json:"-"`
	Cor     Color   `gorm:"foreignKey:CorID;constraint:OnDelete:CASCADE" json:"-"`
}

// ProductCart is the product/cart join row.
type ProductCart struct {
	ProdutoID  uint `gorm:"primaryKey" json:"id_produto"`
	CarrinhoID uint `gorm:"primaryKey" json:"id_carrinho"`

	Produto  Product `gorm:"foreignKey:ProdutoID;constraint:OnDelete:CASCADE" json:"-"`
	Carrinho Cart    `gorm:"foreignKey:CarrinhoID;constraint:OnDelete:CASCADE" json:"-"`
}
