package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type FlightHandler struct {
	service  flights.FlightUseCase
	location *time.Location
}

type routeResponse struct {
	Legs            []domain.Flight `json:"legs"`
	TotalFlightTime string          `json:"total_flight_time"`
	TotalPriceCents int64           `json:"total_price_cents"`
}

type searchResponse struct {
	Outbound []domain.Flight `json:"outbound"`
	Return   []domain.Flight `json:"return,omitempty"`
	Routes   []routeResponse `json:"routes,omitempty"`
}

type flightTimeResponse struct {
	FlightIDs       []int64 `json:"flight_ids"`
	TotalFlightTime string  `json:"total_flight_time"`
}

// NewFlightHandler serves the catalog. Dates in queries are calendar days in
// location; nil means time.Local.
func NewFlightHandler(service flights.FlightUseCase, location *time.Location) *FlightHandler {
	if location == nil {
		location = time.Local
	}
	return &FlightHandler{service: service, location: location}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.add)
	router.GET("/weekly", h.weekly)
	router.GET("/search", h.search)
	router.GET("/flight-time", h.flightTime)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) add(c *gin.Context) {
	var flight domain.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.AddFlight(c.Request.Context(), flight); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) weekly(c *gin.Context) {
	flights, err := h.service.GetWeeklyFlights(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrFlightNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

// search answers GET /flights/search?origin=&destination=&date=[&return_date=][&multistop=true].
func (h *FlightHandler) search(c *gin.Context) {
	origin := strings.TrimSpace(c.Query("origin"))
	destination := strings.TrimSpace(c.Query("destination"))
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}
	date, err := time.ParseInLocation(dateLayout, c.Query("date"), h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	if multistop, _ := strconv.ParseBool(c.Query("multistop")); multistop {
		routes, err := h.service.SearchMultiStopFlights(ctx, origin, destination, date)
		if err != nil {
			writeError(c, err)
			return
		}
		resp := searchResponse{Outbound: []domain.Flight{}, Routes: make([]routeResponse, 0, len(routes))}
		for _, legs := range routes {
			resp.Routes = append(resp.Routes, h.route(legs))
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	var returnDate *time.Time
	if raw := c.Query("return_date"); raw != "" {
		rd, err := time.ParseInLocation(dateLayout, raw, h.location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "return_date must be YYYY-MM-DD"})
			return
		}
		returnDate = &rd
	}

	found, err := h.service.SearchFlights(ctx, origin, destination, date, returnDate)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := searchResponse{Outbound: make([]domain.Flight, 0, len(found))}
	for _, f := range found {
		if domain.SameLocation(f.Origin, origin) {
			resp.Outbound = append(resp.Outbound, f)
		} else {
			resp.Return = append(resp.Return, f)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// flightTime answers GET /flights/flight-time?ids=1,2,3.
func (h *FlightHandler) flightTime(c *gin.Context) {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil || len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be a comma separated list of flight ids"})
		return
	}

	legs := make([]domain.Flight, 0, len(ids))
	for _, id := range ids {
		flight, found, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrFlightNotFound.Error(), "flight_id": id})
			return
		}
		legs = append(legs, *flight)
	}

	c.JSON(http.StatusOK, flightTimeResponse{FlightIDs: ids, TotalFlightTime: h.service.CalculateTotalFlightTime(legs)})
}

func (h *FlightHandler) route(legs []domain.Flight) routeResponse {
	var total int64
	for _, l := range legs {
		total += l.PriceCents
	}
	return routeResponse{Legs: legs, TotalFlightTime: h.service.CalculateTotalFlightTime(legs), TotalPriceCents: total}
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
