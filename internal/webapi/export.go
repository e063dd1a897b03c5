package webapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerExportRoutes() {
	webserver.ApiGET("/admin/orders/export", exportOrdersCSV)
	webserver.ApiGET("/admin/products/export", exportProductsXLSX)
}

type orderCSVRow struct {
	ID            string  `csv:"id"`
	CustomerName  string  `csv:"customer_name"`
	CustomerEmail string  `csv:"customer_email"`
	City          string  `csv:"city"`
	ItemCount     int     `csv:"item_count"`
	Subtotal      float64 `csv:"subtotal"`
	TransportFee  float64 `csv:"transport_fee"`
	Total         float64 `csv:"total"`
	Status        string  `csv:"status"`
	PaymentMethod string  `csv:"payment_method"`
	Date          string  `csv:"date"`
}

func exportOrdersCSV(c echo.Context) error {
	var orders []domain.Order
	if err := GetDB(c).Order("created_at DESC").Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	rows := make([]orderCSVRow, len(orders))
	for i, o := range orders {
		count := 0
		for _, item := range o.Items {
			count += item.Quantity
		}
		rows[i] = orderCSVRow{
			ID:            o.ID,
			CustomerName:  o.Customer.Name,
			CustomerEmail: o.Customer.Email,
			City:          o.Customer.City,
			ItemCount:     count,
			Subtotal:      o.Subtotal,
			TransportFee:  o.TransportFee,
			Total:         o.Total,
			Status:        o.Status,
			PaymentMethod: o.PaymentMethod,
			Date:          o.CreatedAt.Format("2006-01-02"),
		}
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to render CSV", nil)
	}

	audit(c, "order:export", fmt.Sprintf("exported %d orders", len(rows)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}

func exportProductsXLSX(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	const sheet = "Sheet1"
	xlsx := excelize.NewFile()
	headers := []string{"ID", "Name", "Price", "Category", "Stock", "Description", "Image"}
	for i, h := range headers {
		xlsx.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, p := range products {
		row := i + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ID)
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Name)
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Price)
		xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Category)
		xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Stock)
		xlsx.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.Description)
		xlsx.SetCellValue(sheet, fmt.Sprintf("G%d", row), p.Image)
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to render workbook", nil)
	}

	audit(c, "product:export", fmt.Sprintf("exported %d products", len(products)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
