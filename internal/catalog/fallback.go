package catalog

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultProducts is the dataset shown when the catalog API cannot be reached.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Ladrillo Hueco 12x18x33",
			Price:       decimal.NewFromInt(1200),
			Stock:       intPtr(1000),
			Category:    "Obra Gruesa",
			Image:       "https://http2.mlstatic.com/D_NQ_NP_796532-MLA45711365440_042021-O.webp",
			Description: "Ladrillo cerámico hueco para muros portantes y cerramientos.",
		},
		{
			ID:          "2",
			Name:        "Cemento Loma Negra 50kg",
			Price:       decimal.NewFromInt(9500),
			Stock:       intPtr(50),
			Category:    "Obra Gruesa",
			Image:       "https://http2.mlstatic.com/D_NQ_NP_916327-MLA44546376362_012021-O.webp",
			Description: "Cemento Portland fillerizado, ideal para uso general en la construcción.",
		},
		{
			ID:          "3",
			Name:        "Hierro del 8 (Barra 12m)",
			Price:       decimal.NewFromInt(12500),
			Stock:       intPtr(0),
			Category:    "Hierros",
			Image:       "https://http2.mlstatic.com/D_NQ_NP_606622-MLA44597332766_012021-O.webp",
			Description: "Acero aletado para hormigón armado. Barra de 12 metros.",
		},
		{
			ID:          "4",
			Name:        "Placa Durlock Estándar 12.5mm",
			Price:       decimal.NewFromInt(15800),
			Stock:       intPtr(20),
			Category:    "Durlock",
			Image:       "https://http2.mlstatic.com/D_NQ_NP_736279-MLA44566373804_012021-O.webp",
			Description: "Placa de yeso estándar para paredes y cielorrasos interiores.",
		},
	}
}

func intPtr(v int) *int {
	return &v
}
