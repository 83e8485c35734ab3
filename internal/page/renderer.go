// Package page renders the product detail page. It consumes the
// backend records and read-only snapshots of the search and chat
// controllers; it has no control logic of its own.
package page

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/southmarket/storefront/internal/chat"
	"github.com/southmarket/storefront/internal/domain"
	"github.com/southmarket/storefront/internal/search"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// DataSource provides the product and reviews records.
type DataSource interface {
	GetItem(ctx context.Context, lang string) (*domain.ItemDetail, error)
	GetReviews(ctx context.Context, lang string) (*domain.ReviewsData, error)
}

// Renderer serves the product page.
type Renderer struct {
	source DataSource
	search *search.Controller
	chat   *chat.Session
	logger *slog.Logger
}

// NewRenderer wires the renderer to its data source and controllers.
func NewRenderer(source DataSource, searchCtrl *search.Controller, chatSession *chat.Session, logger *slog.Logger) *Renderer {
	return &Renderer{
		source: source,
		search: searchCtrl,
		chat:   chatSession,
		logger: logger,
	}
}

// view is the template input: fetched records, controller snapshots,
// and the static merchandising rows.
type view struct {
	Item            *domain.ItemDetail
	Reviews         *domain.ReviewsData
	Unavailable     bool
	Search          search.Snapshot
	Chat            chat.Snapshot
	RelatedProducts []RelatedProduct
	AlsoBought      []RelatedProduct
	Specifications  []Specification
}

// Handler renders the product detail page. A backend failure renders
// the page shell with an unavailable notice; it never fails the
// process.
func (pr *Renderer) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")

		v := view{
			Search:          pr.search.Snapshot(),
			Chat:            pr.chat.Snapshot(),
			RelatedProducts: relatedProducts,
			AlsoBought:      alsoBought,
			Specifications:  specifications,
		}

		item, err := pr.source.GetItem(r.Context(), lang)
		if err != nil {
			pr.logger.Warn("failed to load item detail", slog.String("error", err.Error()))
			v.Unavailable = true
		} else {
			v.Item = item
		}

		if !v.Unavailable {
			reviews, err := pr.source.GetReviews(r.Context(), lang)
			if err != nil {
				pr.logger.Warn("failed to load reviews", slog.String("error", err.Error()))
			} else {
				v.Reviews = reviews
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ExecuteTemplate(w, "product.html", v); err != nil {
			pr.logger.Error("template render failed", slog.String("error", err.Error()))
		}
	}
}
