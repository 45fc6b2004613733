package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/repositories"
	"github.com/Rakhulsr/go-furniture/app/schema"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/Rakhulsr/go-furniture/app/utils/calc"
	"github.com/Rakhulsr/go-furniture/app/utils/format"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type ConfigurationHandler struct {
	configurations repositories.ConfigurationRepositoryImpl
	catalog        repositories.CatalogRepositoryImpl
	pricing        *services.PricingService
	render         *render.Render
	logger         *zap.Logger
}

func NewConfigurationHandler(
	configurations repositories.ConfigurationRepositoryImpl,
	catalog repositories.CatalogRepositoryImpl,
	pricing *services.PricingService,
	r *render.Render,
	logger *zap.Logger,
) *ConfigurationHandler {
	return &ConfigurationHandler{configurations, catalog, pricing, r, logger}
}

type PriceView struct {
	Subtotal          float64  `json:"subtotal"`
	CustomSurcharge   float64  `json:"customSurcharge"`
	QualityAdjustment float64  `json:"qualityAdjustment"`
	OptionsTotal      float64  `json:"optionsTotal"`
	Calculated        float64  `json:"calculated"`
	Override          *float64 `json:"override,omitempty"`
	Effective         float64  `json:"effective"`
	Display           string   `json:"display"`
}

func money(d decimal.Decimal) float64 {
	return calc.RoundPrice(d).InexactFloat64()
}

func NewPriceView(b calc.PriceBreakdown) PriceView {
	view := PriceView{
		Subtotal:          money(b.Subtotal),
		CustomSurcharge:   money(b.CustomSurcharge),
		QualityAdjustment: money(b.QualityAdjustment),
		OptionsTotal:      money(b.OptionsTotal),
		Calculated:        money(b.Calculated),
		Effective:         money(b.Effective()),
	}
	if b.Override.Valid {
		override := money(b.Override.Decimal)
		view.Override = &override
	}
	view.Display = format.FormatEuro(view.Effective)
	return view
}

type ConfigurationSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Subtitle    string  `json:"subtitle"`
	Price       float64 `json:"price"`
	Display     string  `json:"display"`
	LeadTime    int     `json:"leadTime"`
	IsCustom    bool    `json:"isCustom"`
	HasOverride bool    `json:"hasOverride"`
}

// storedPrice is the override when set, otherwise the last calculated price.
func storedPrice(c models.TableConfiguration) float64 {
	if c.PriceOverride != nil {
		return *c.PriceOverride
	}
	return c.CalculatedPrice
}

func summarize(c models.TableConfiguration) ConfigurationSummary {
	price := storedPrice(c)
	return ConfigurationSummary{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug.Current,
		Subtitle:    schema.Preview(&c).Subtitle,
		Price:       price,
		Display:     format.FormatEuro(price),
		LeadTime:    c.LeadTime,
		IsCustom:    c.HasCustomDimensions(),
		HasOverride: c.PriceOverride != nil,
	}
}

type ListResponse struct {
	Items  []ConfigurationSummary `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *ConfigurationHandler) fail(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var verr *helpers.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		resp = errorResponse{Error: http.StatusText(status)}
	}
	_ = h.render.JSON(w, status, resp)
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}

// List serves the available configurations with their stored price.
func (h *ConfigurationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultLimit)
	if limit == 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := queryInt(r, "offset", 0)

	configurations, total, err := h.configurations.GetAvailablePaginated(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]ConfigurationSummary, 0, len(configurations))
	for _, c := range configurations {
		items = append(items, summarize(c))
	}
	_ = h.render.JSON(w, http.StatusOK, ListResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

type DetailResponse struct {
	Configuration models.TableConfiguration `json:"configuration"`
	Price         *PriceView                `json:"price,omitempty"`
	// PriceError explains why the configuration could not be priced against
	// the current catalog; the stored price is served instead.
	PriceError  string  `json:"priceError,omitempty"`
	StoredPrice float64 `json:"storedPrice"`
}

func (h *ConfigurationHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	configuration, err := h.configurations.GetBySlug(r.Context(), slug)
	if errors.Is(err, models.ErrDocumentNotFound) {
		h.fail(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}

	resp := DetailResponse{Configuration: *configuration, StoredPrice: storedPrice(*configuration)}
	breakdown, err := h.pricing.PriceConfiguration(r.Context(), configuration)
	if err != nil {
		h.logger.Warn("configuration cannot be priced", zap.String("slug", slug), zap.Error(err))
		resp.PriceError = err.Error()
	} else {
		view := NewPriceView(breakdown)
		resp.Price = &view
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

type QuoteRequest struct {
	Shape            string                    `json:"shape"`
	Material         string                    `json:"material"`
	Size             string                    `json:"size"`
	Quality          string                    `json:"quality"`
	CustomDimensions *models.CustomDimensions  `json:"customDimensions,omitempty"`
	Options          []models.AdditionalOption `json:"options,omitempty"`
}

func (q QuoteRequest) configuration() *models.TableConfiguration {
	ref := func(id string) models.Reference {
		if id == "" {
			return models.Reference{}
		}
		return models.NewReference(id)
	}
	return &models.TableConfiguration{
		Name:              "quote",
		Slug:              models.NewSlug("quote"),
		Shape:             ref(q.Shape),
		Material:          ref(q.Material),
		Size:              ref(q.Size),
		Quality:           ref(q.Quality),
		CustomDimensions:  q.CustomDimensions,
		AdditionalOptions: q.Options,
		LeadTime:          1,
	}
}

// isClientError reports whether a pricing failure was caused by the request.
func isClientError(err error) bool {
	var verr *helpers.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, services.ErrMissingReference) ||
		errors.Is(err, services.ErrShapeNotPriced) ||
		errors.Is(err, models.ErrDocumentNotFound) ||
		errors.Is(err, calc.ErrNegativePrice) ||
		errors.Is(err, calc.ErrNonPositiveFactor)
}

// Quote prices an unsaved combination of catalog documents.
func (h *ConfigurationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	breakdown, err := h.pricing.PriceConfiguration(r.Context(), req.configuration())
	if err != nil {
		if isClientError(err) {
			h.fail(w, http.StatusBadRequest, err)
			return
		}
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, NewPriceView(breakdown))
}

type CatalogResponse struct {
	Shapes    []models.TableShape    `json:"shapes"`
	Materials []models.TableMaterial `json:"materials"`
	Sizes     []models.TableSize     `json:"sizes"`
	Qualities []models.TableQuality  `json:"qualities"`
}

// Catalog serves the active options in display order.
func (h *ConfigurationHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp CatalogResponse
	var err error

	if resp.Shapes, err = h.catalog.ActiveShapes(ctx); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	if resp.Materials, err = h.catalog.ActiveMaterials(ctx); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	if resp.Sizes, err = h.catalog.ActiveSizes(ctx); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	if resp.Qualities, err = h.catalog.ActiveQualities(ctx); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

func (h *ConfigurationHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
