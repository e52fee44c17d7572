package machine

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/handler"
	"github.com/musec/clowder/pkg/model"
)

func NewHandler(machineService machineService) Handler {
	return Handler{
		machineService: machineService,
	}
}

type Handler struct {
	machineService machineService
}

type machineService interface {
	Create(ctx context.Context, name string, processorID uint, memoryGB int) (*model.Machine, error)
	FindAll(ctx context.Context) ([]*model.Machine, error)
	FindByName(ctx context.Context, name string) (*model.Machine, error)
	Update(ctx context.Context, name string, processorID uint, memoryGB int) (*model.Machine, error)
	Delete(ctx context.Context, name string) error
	FindAllProcessors(ctx context.Context) ([]model.Processor, error)
}

type SaveMachineRequest struct {
	Name        string `json:"name" binding:"required"`
	ProcessorID uint   `json:"processorId" binding:"required"`
	MemoryGB    int    `json:"memoryGB" binding:"required,gt=0"`
}

// Create adds a machine to the inventory.
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /machines createMachine
	//
	// Create machine
	//
	// responses:
	//   201: Machine
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   409: Error
	//   415: Error
	var request SaveMachineRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	machine, err := h.machineService.Create(c.Request.Context(), request.Name, request.ProcessorID, request.MemoryGB)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, machine)
}

// FindAll returns the machine inventory ordered by name, with the full
// processor hierarchy of each machine.
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /machines findAllMachines
	//
	// Find machines
	//
	// responses:
	//   200: []Machine
	//   401: Error
	machines, err := h.machineService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, machines)
}

// FindByName returns a machine with its disks and NICs.
func (h Handler) FindByName(c *gin.Context) {
	// swagger:route GET /machines/{name} findMachineByName
	//
	// Find machine
	//
	// responses:
	//   200: Machine
	//   401: Error
	//   404: Error
	machine, err := h.machineService.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, machine)
}

type UpdateMachineRequest struct {
	ProcessorID uint `json:"processorId" binding:"required"`
	MemoryGB    int  `json:"memoryGB" binding:"required,gt=0"`
}

// Update changes a machine's processor reference or memory size. Names are
// stable identifiers and cannot be changed.
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /machines/{name} updateMachine
	//
	// Update machine
	//
	// responses:
	//   200: Machine
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	var request UpdateMachineRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	machine, err := h.machineService.Update(c.Request.Context(), c.Param("name"), request.ProcessorID, request.MemoryGB)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, machine)
}

// Delete removes a machine from the inventory.
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /machines/{name} deleteMachine
	//
	// Delete machine
	//
	// responses:
	//   202:
	//   401: Error
	//   403: Error
	//   404: Error
	err := h.machineService.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}

// FindAllProcessors returns all known processors, so clients can offer
// processor choices when creating machines.
func (h Handler) FindAllProcessors(c *gin.Context) {
	// swagger:route GET /processors findAllProcessors
	//
	// Find processors
	//
	// responses:
	//   200: []Processor
	//   401: Error
	processors, err := h.machineService.FindAllProcessors(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, processors)
}
