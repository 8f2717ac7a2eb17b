package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/boardcamp/boardcamp-api/internal/storage"
	"github.com/boardcamp/boardcamp-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func customerResponse(cu storage.Customer) CustomerResponse {
	return CustomerResponse{
		ID:       cu.ID,
		Name:     cu.Name,
		Phone:    cu.Phone,
		CPF:      cu.CPF,
		Birthday: formatDate(cu.Birthday),
	}
}

func (h *Handlers) ListCustomers(c *gin.Context) {
	rows, err := h.Customers.ListCustomers(c.Query("cpf"))
	if err != nil {
		h.Log.Error("list customers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no customers found"})
		return
	}
	out := make([]CustomerResponse, 0, len(rows))
	for _, cu := range rows {
		out = append(out, customerResponse(cu))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cu, err := h.Customers.GetCustomer(id)
	if err != nil {
		if err == storage.ErrCustomerNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("get customer failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch"})
		return
	}
	c.JSON(http.StatusOK, customerResponse(cu))
}

func (h *Handlers) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	birthday, _ := time.Parse(dateLayout, req.Birthday) // format checked by the datetime tag

	cu, err := h.Customers.CreateCustomer(storage.Customer{
		Name:     req.Name,
		Phone:    req.Phone,
		CPF:      req.CPF,
		Birthday: birthday,
	})
	if err != nil {
		if err == storage.ErrCPFExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("create customer failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	telemetry.IncCustomersCreated()
	c.JSON(http.StatusCreated, customerResponse(cu))
}

func (h *Handlers) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req CustomerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	birthday, _ := time.Parse(dateLayout, req.Birthday)

	cu := storage.Customer{
		ID:       id,
		Name:     req.Name,
		Phone:    req.Phone,
		CPF:      req.CPF,
		Birthday: birthday,
	}
	if err := h.Customers.UpdateCustomer(cu); err != nil {
		if err == storage.ErrCustomerNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err == storage.ErrCPFExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("update customer failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	c.JSON(http.StatusOK, customerResponse(cu))
}
