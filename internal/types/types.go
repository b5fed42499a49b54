package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductID is the server-assigned identity of a product.
// It is opaque to the client and only ever embedded into URLs and bodies.
type ProductID string

// NewProductID returns a fresh client-side identity for a product about to be created
func NewProductID() ProductID {
	return ProductID(primitive.NewObjectID().Hex())
}

// String returns the identity as it appears in URLs
func (id ProductID) String() string {
	return string(id)
}

// IsZero reports whether the identity is empty
func (id ProductID) IsZero() bool {
	return id == ""
}

// MarshalJSON always encodes the identity as a plain JSON string
func (id ProductID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a plain string or the extended form {"$oid": "..."}
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	var ext struct {
		OID *string `json:"$oid"`
	}
	if err := json.Unmarshal(data, &ext); err != nil {
		return fmt.Errorf("invalid product id %s: %w", string(data), err)
	}
	if ext.OID == nil {
		return fmt.Errorf("invalid product id %s: expected string or {\"$oid\": ...}", string(data))
	}
	*id = ProductID(*ext.OID)
	return nil
}

// Product is the full record used by the create, update and detail views
type Product struct {
	ID          ProductID `json:"_id" yaml:"_id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Price       uint32    `json:"price" yaml:"price"` // smallest currency unit
	Quantity    uint32    `json:"quantity" yaml:"quantity"`
	Status      string    `json:"status" yaml:"status"`
}

// Short projects the product onto its list representation
func (p Product) Short() ShortProduct {
	return ShortProduct{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}

// ShortProduct is the list-view projection of a Product
type ShortProduct struct {
	ID    ProductID `json:"_id" yaml:"_id"`
	Name  string    `json:"name" yaml:"name"`
	Price uint32    `json:"price" yaml:"price"`
}

// Label renders the row text shown in the product list
func (s ShortProduct) Label() string {
	return fmt.Sprintf("%s - $%d", s.Name, s.Price)
}

// TLSConfig contains TLS/mTLS settings for the API connection
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"cert_file,omitempty"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"key_file,omitempty"`
	CAFile             string `json:"caFile,omitempty" yaml:"ca_file,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// IsZero reports whether no TLS option is set
func (c *TLSConfig) IsZero() bool {
	return c == nil || (c.CertFile == "" && c.KeyFile == "" && c.CAFile == "" && !c.InsecureSkipVerify)
}

// CallRecord describes one round trip against the product API
type CallRecord struct {
	ID           int64     `json:"id,omitempty" yaml:"id,omitempty"`
	RequestID    string    `json:"requestId" yaml:"request_id"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Operation    string    `json:"operation" yaml:"operation"`
	Method       string    `json:"method" yaml:"method"`
	URL          string    `json:"url" yaml:"url"`
	Status       int       `json:"status" yaml:"status"` // 0 when no response was received
	Duration     int64     `json:"duration" yaml:"duration"` // milliseconds
	RequestSize  int       `json:"requestSize" yaml:"request_size"`
	ResponseSize int       `json:"responseSize" yaml:"response_size"`
	Error        string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the call ended without a usable response
func (r CallRecord) Failed() bool {
	return r.Error != ""
}
