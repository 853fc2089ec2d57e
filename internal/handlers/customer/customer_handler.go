// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"
	"strconv"

	"insurance-service/internal/domain/customer"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"
	service "insurance-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a customer with its login account (admin only).
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	actorID := middleware.MustGetUserID(c)
	result, err := h.customerService.CreateCustomer(c.Request.Context(), actorID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, customer.ToDto(result))
}

// GetAllCustomers lists every customer (admin only).
func (h *CustomerHandler) GetAllCustomers(c *gin.Context) {
	customers, err := h.customerService.GetAllCustomers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	dtos := make([]customer.CustomerDto, 0, len(customers))
	for i := range customers {
		dtos = append(dtos, customer.ToDto(&customers[i]))
	}

	response.JSON(c, http.StatusOK, dtos)
}

// GetCustomerByID retrieves one customer (admin only).
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid customer id", nil)
		return
	}

	result, err := h.customerService.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, customer.ToDto(result))
}
