// Package domain holds the typed records shared by the storefront
// controllers, the backend client, and the page renderer.
package domain

import (
	"encoding/json"
	"time"
)

// PaymentMethod is a single payment option offered for the product.
type PaymentMethod struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SellerInfo describes the merchant behind the listing.
type SellerInfo struct {
	Name       string `json:"name"`
	Reputation string `json:"reputation"`
	Sales      int    `json:"sales"`
}

// ItemDetail is the product record served by the backend.
type ItemDetail struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          float64         `json:"price"`
	Currency       string          `json:"currency"`
	Images         []string        `json:"images"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Seller         SellerInfo      `json:"seller"`
	Stock          int             `json:"stock"`
	Ratings        float64         `json:"ratings"`
	ReviewsCount   int             `json:"reviews_count"`
}

// Review is a single customer review.
type Review struct {
	ID               string `json:"id"`
	Rating           int    `json:"rating"`
	Text             string `json:"text"`
	Author           string `json:"author"`
	Date             string `json:"date"`
	VerifiedPurchase bool   `json:"verified_purchase"`
}

// RatingBreakdown counts reviews per star level.
type RatingBreakdown struct {
	FiveStars  int `json:"five_stars"`
	FourStars  int `json:"four_stars"`
	ThreeStars int `json:"three_stars"`
	TwoStars   int `json:"two_stars"`
	OneStar    int `json:"one_star"`
}

// CharacteristicRating rates one product characteristic.
type CharacteristicRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// ReviewsData is the aggregate reviews record served by the backend.
type ReviewsData struct {
	OverallRating         float64                `json:"overall_rating"`
	TotalReviews          int                    `json:"total_reviews"`
	RatingBreakdown       RatingBreakdown        `json:"rating_breakdown"`
	CharacteristicRatings []CharacteristicRating `json:"characteristic_ratings"`
	Reviews               []Review               `json:"reviews"`
}

// SearchResult is a single hit returned by the search endpoint.
type SearchResult struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Content string   `json:"content"`
	Score   *float64 `json:"score,omitempty"`
}

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one entry in a chat transcript. Turns are immutable once
// appended; the transcript is append-only and insertion-ordered.
type ChatTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ForwardedRequest is a client request to be relayed by the gateway
// proxy. TargetPath is the inbound path with the proxy's mount prefix
// already stripped and must be non-empty.
type ForwardedRequest struct {
	Method     string
	TargetPath string
	// RawQuery is the original query string, relayed verbatim for GET
	// and dropped for POST.
	RawQuery string
	// Body is the inbound JSON body for POST, nil for GET.
	Body json.RawMessage
}

// ForwardedResponse is the gateway proxy's result: either the
// backend's own status and body relayed unchanged, or the synthesized
// unavailable envelope.
type ForwardedResponse struct {
	StatusCode int
	Body       json.RawMessage
}
