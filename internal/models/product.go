package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Money carries a decimal amount plus an ISO currency code. The storefront
// never converts between currencies; carts are assumed single-currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Product is the canonical catalog shape. Upstream catalogs are inconsistent
// about ids (number vs string) and images (string vs array); both are
// normalized here so the rest of the service sees a single shape.
type Product struct {
	ID          FlexID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	Images      ImageList `json:"images,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
}

// FlexID accepts a JSON string or number and stores it as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = FlexID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id is neither string nor number: %w", err)
	}

	*f = FlexID(n.String())

	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// ImageList accepts either a single URL string or an array of URL strings.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*l = ImageList{s}

		return nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return fmt.Errorf("images is neither string nor array: %w", err)
	}

	*l = ImageList(urls)

	return nil
}

func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
