package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"moving-progress/internal/dashboard"
	"moving-progress/pkg/response"
)

// Snapshot godoc
// @Summary     Get the dashboard
// @Description Returns sections with progress, the overall percentage, the priority list and the tasks still available for it. Reads through the cache unless refresh is set.
// @Tags        Dashboard
// @Produce     json
// @Param       refresh query bool false "Bypass the cache"
// @Success     200 {object} snapshotResp
// @Failure     502 {object} response.Resp "Backend unavailable"
// @Failure     503 {object} response.Resp "Not loaded"
// @Router      /api/v1/dashboard [GET]
func (h *handler) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()

	var req snapshotReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	if _, err := h.uc.Load(ctx, dashboard.LoadInput{Refresh: req.Refresh}); err != nil {
		h.l.Warnf(ctx, "uc.Load: %v", err)
		// Serve what is already in memory when possible.
		if _, serr := h.uc.Snapshot(ctx); errors.Is(serr, dashboard.ErrNotLoaded) {
			response.Error(c, h.mapError(err), nil)
			return
		}
	}

	snap, err := h.uc.Snapshot(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Snapshot: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSnapshotResp(snap))
}

// Load godoc
// @Summary     Reload dashboard data
// @Description Runs the staged load (move details, tasks, priority tasks) bypassing the cache.
// @Tags        Dashboard
// @Produce     json
// @Success     200 {object} loadResp
// @Failure     502 {object} response.Resp "Backend unavailable"
// @Router      /api/v1/dashboard/load [POST]
func (h *handler) Load(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.Load(ctx, dashboard.LoadInput{Refresh: true})
	if err != nil {
		h.l.Errorf(ctx, "uc.Load: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newLoadResp(out))
}

// SectionProgress godoc
// @Summary     Get section progress
// @Tags        Dashboard
// @Produce     json
// @Param       section_id path int true "Section ID (1-9)"
// @Success     200 {object} progressResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/dashboard/sections/{section_id}/progress [GET]
func (h *handler) SectionProgress(c *gin.Context) {
	ctx := c.Request.Context()

	sectionID, err := h.processSectionParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	p, err := h.uc.SectionProgress(ctx, sectionID)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newProgressResp(p))
}

// ListTasks godoc
// @Summary     List tasks
// @Description Lists custom, lesson and CTA tasks. Completed tasks are hidden unless include_completed is set.
// @Tags        Tasks
// @Produce     json
// @Param       category          query string false "pre-move, in-move or post-move"
// @Param       section_id        query int    false "Section ID"
// @Param       source            query string false "custom, lesson or cta"
// @Param       include_completed query bool   false "Include completed tasks"
// @Success     200 {object} listTasksResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/dashboard/tasks [GET]
func (h *handler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListTasksReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	tasks, err := h.uc.ListTasks(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, listTasksResp{Tasks: newTaskResps(tasks), Total: len(tasks)})
}

// ListPriority godoc
// @Summary     List priority tasks
// @Tags        Priority
// @Produce     json
// @Success     200 {array} priorityTaskResp
// @Router      /api/v1/dashboard/priority [GET]
func (h *handler) ListPriority(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.uc.ListPriority(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListPriority: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newPriorityResps(items))
}

// AddToPriority godoc
// @Summary     Add tasks to the priority list
// @Description Adds tasks in order. Unknown, duplicate and completed ids are reported as skipped.
// @Tags        Priority
// @Accept      json
// @Produce     json
// @Param       body body addPriorityReq true "Task ids"
// @Success     200 {object} addPriorityResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/dashboard/priority [POST]
func (h *handler) AddToPriority(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAddPriorityReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.AddManyToPriority(ctx, req.TaskIDs)
	if err != nil {
		h.l.Errorf(ctx, "uc.AddManyToPriority: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAddPriorityResp(out))
}

// RemoveFromPriority godoc
// @Summary     Remove a task from the priority list
// @Tags        Priority
// @Produce     json
// @Param       task_id path string true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     502 {object} response.Resp "Rolled back"
// @Router      /api/v1/dashboard/priority/{task_id} [DELETE]
func (h *handler) RemoveFromPriority(c *gin.Context) {
	ctx := c.Request.Context()

	taskID, err := h.processTaskParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.RemoveFromPriority(ctx, taskID); err != nil {
		h.l.Errorf(ctx, "uc.RemoveFromPriority: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// CompletePriorityTask godoc
// @Summary     Complete a priority task
// @Description Marks the task completed and removes it from the priority list. The body must carry confirm=true.
// @Tags        Priority
// @Accept      json
// @Produce     json
// @Param       task_id path string      true "Task ID"
// @Param       body    body completeReq true "Confirmation"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Not confirmed"
// @Failure     502 {object} response.Resp "Rejected by backend"
// @Router      /api/v1/dashboard/priority/{task_id}/complete [POST]
func (h *handler) CompletePriorityTask(c *gin.Context) {
	ctx := c.Request.Context()

	taskID, err := h.processTaskParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	req, err := h.processCompleteReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var confirm dashboard.Confirmer
	if req.Confirm {
		confirm = dashboard.Confirmed
	}

	if err := h.uc.CompletePriorityTask(ctx, taskID, confirm); err != nil {
		h.l.Errorf(ctx, "uc.CompletePriorityTask: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// CreateCustomTask godoc
// @Summary     Create a custom task
// @Description Validates, then stores the task on the backend and adds the returned record.
// @Tags        Custom Tasks
// @Accept      json
// @Produce     json
// @Param       section_id path int                 true "Section ID"
// @Param       body       body createCustomTaskReq true "Task"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Rejected by backend"
// @Router      /api/v1/dashboard/sections/{section_id}/custom-tasks [POST]
func (h *handler) CreateCustomTask(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateCustomTaskReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	task, err := h.uc.CreateCustomTask(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateCustomTask: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newTaskResp(task))
}

// ToggleCustomTask godoc
// @Summary     Toggle a custom task
// @Tags        Custom Tasks
// @Produce     json
// @Param       section_id path int    true "Section ID"
// @Param       task_id    path string true "Task ID"
// @Success     200 {object} taskResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     502 {object} response.Resp "Rolled back"
// @Router      /api/v1/dashboard/sections/{section_id}/custom-tasks/{task_id}/toggle [PATCH]
func (h *handler) ToggleCustomTask(c *gin.Context) {
	ctx := c.Request.Context()

	uri, err := h.processCustomTaskURI(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	task, err := h.uc.ToggleCustomTask(ctx, uri.SectionID, uri.TaskID)
	if err != nil {
		h.l.Errorf(ctx, "uc.ToggleCustomTask: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newTaskResp(task))
}

// DeleteCustomTask godoc
// @Summary     Delete a custom task
// @Tags        Custom Tasks
// @Produce     json
// @Param       section_id path int    true "Section ID"
// @Param       task_id    path string true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     502 {object} response.Resp "Rolled back"
// @Router      /api/v1/dashboard/sections/{section_id}/custom-tasks/{task_id} [DELETE]
func (h *handler) DeleteCustomTask(c *gin.Context) {
	ctx := c.Request.Context()

	uri, err := h.processCustomTaskURI(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteCustomTask(ctx, uri.SectionID, uri.TaskID); err != nil {
		h.l.Errorf(ctx, "uc.DeleteCustomTask: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// UpdateMoveDetails godoc
// @Summary     Update move details
// @Description Persists personal move detail fields and returns the merged details.
// @Tags        Move Details
// @Accept      json
// @Produce     json
// @Param       body body object true "Fields to update"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Rejected by backend"
// @Router      /api/v1/dashboard/move-details [PATCH]
func (h *handler) UpdateMoveDetails(c *gin.Context) {
	ctx := c.Request.Context()

	fields, err := h.processMoveDetailsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	details, err := h.uc.UpdateMoveDetails(ctx, fields)
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateMoveDetails: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, details)
}

// ListMutations godoc
// @Summary     List recent mutations
// @Description Returns the mutation journal, newest first.
// @Tags        Dashboard
// @Produce     json
// @Param       limit query int    false "Max entries (default 50)"
// @Param       state query string false "committed, rolled_back or aborted"
// @Success     200 {array} mutationResp
// @Failure     404 {object} response.Resp "Journal disabled"
// @Router      /api/v1/dashboard/mutations [GET]
func (h *handler) ListMutations(c *gin.Context) {
	ctx := c.Request.Context()

	var req listMutationsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	entries, err := h.uc.ListMutations(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newMutationResps(entries))
}
