package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

// ExportOrdersToExcel dumps every order to a spreadsheet for the admin.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Pedidos")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "NomeUsuario", "EmailUsuario", "Status", "MetodoPagamento",
			"Frete", "ValorTotal", "ExternalReference", "PreferenceID",
			"PaymentID", "Cidade", "Estado", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.NomeUsuario)
			row.AddCell().SetValue(o.EmailUsuario)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.MetodoPagamento)
			row.AddCell().SetValue(o.Frete)
			row.AddCell().SetValue(o.ValorTotal)
			row.AddCell().SetValue(o.ExternalReference)
			row.AddCell().SetValue(o.MercadopagoPreferenceID)
			row.AddCell().SetValue(o.MercadopagoPaymentID)
			row.AddCell().SetValue(o.Cidade)
			row.AddCell().SetValue(o.Estado)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(o.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=pedidos.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write Excel file"})
			return
		}
	}
}
