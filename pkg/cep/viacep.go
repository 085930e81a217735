package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound marks a postal code the upstream service does not know.
var ErrNotFound = errors.New("cep not found")

// Address is the metadata ViaCEP returns for a postal code.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client queries the ViaCEP postal-code service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup strips non-digit characters from code and resolves it upstream.
// Callers are expected to collapse every failure cause into one generic error.
func (c *Client) Lookup(ctx context.Context, code string) (Address, error) {
	digits := onlyDigits(code)
	if len(digits) != 8 {
		return Address{}, fmt.Errorf("malformed cep %q", code)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("cep lookup failed: status %d", resp.StatusCode)
	}

	var body struct {
		CEP          string `json:"cep"`
		Street       string `json:"logradouro"`
		Complement   string `json:"complemento"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		// ViaCEP signals unknown codes with {"erro": true}; older responses
		// carried the string "true".
		Erro json.RawMessage `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, err
	}
	if erroMarker(body.Erro) {
		return Address{}, ErrNotFound
	}
	return Address{
		CEP:          body.CEP,
		Street:       body.Street,
		Complement:   body.Complement,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		State:        body.State,
	}, nil
}

// erroMarker reports whether the raw "erro" value is truthy: boolean true or
// the string "true". A literal false is not a not-found marker.
func erroMarker(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "true", `"true"`:
		return true
	default:
		return false
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
