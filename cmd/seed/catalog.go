package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalog archivo XML con la empresa demo, su bodega y los productos con existencia inicial.
//
//	<catalogo empresa="Tienda Demo" email="alertas@demo.co" bodega="Principal">
//	  <producto sku="CAF-500" nombre="Café molido 500g" precio="18500" cantidad="40"/>
//	</catalogo>
type catalog struct {
	Company   string        `xml:"empresa,attr"`
	Email     string        `xml:"email,attr"`
	Warehouse string        `xml:"bodega,attr"`
	Products  []catalogItem `xml:"producto"`
}

type catalogItem struct {
	SKU      string `xml:"sku,attr"`
	Name     string `xml:"nombre,attr"`
	Price    string `xml:"precio,attr"`
	Quantity int    `xml:"cantidad,attr"`
}

// parseCatalog decodifica el catálogo. Acepta UTF-8 e ISO-8859-1 (exportaciones de hojas de cálculo en Windows).
func parseCatalog(r io.Reader) (*catalog, []decimal.Decimal, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	if strings.TrimSpace(c.Company) == "" {
		return nil, nil, fmt.Errorf("catálogo sin atributo empresa")
	}
	if strings.TrimSpace(c.Warehouse) == "" {
		c.Warehouse = "Principal"
	}

	prices := make([]decimal.Decimal, len(c.Products))
	seen := map[string]bool{}
	for i, p := range c.Products {
		sku := strings.ToUpper(strings.TrimSpace(p.SKU))
		if sku == "" || strings.TrimSpace(p.Name) == "" {
			return nil, nil, fmt.Errorf("producto %d: sku y nombre son obligatorios", i+1)
		}
		if seen[sku] {
			return nil, nil, fmt.Errorf("producto %d: sku %s repetido", i+1, sku)
		}
		seen[sku] = true
		if p.Quantity < 0 {
			return nil, nil, fmt.Errorf("producto %s: cantidad negativa", sku)
		}
		price := decimal.Zero
		if p.Price != "" {
			d, err := decimal.NewFromString(strings.TrimSpace(p.Price))
			if err != nil {
				return nil, nil, fmt.Errorf("producto %s: precio %q inválido", sku, p.Price)
			}
			price = d
		}
		prices[i] = price
	}
	return &c, prices, nil
}
