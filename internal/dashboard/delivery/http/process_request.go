package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *handler) processSectionParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("section_id"))
	if err != nil {
		return 0, errInvalidSectionParam
	}
	return id, nil
}

func (h *handler) processTaskParam(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("task_id"))
	if id == "" {
		return "", errMissingTaskID
	}
	return id, nil
}

func (h *handler) processCustomTaskURI(c *gin.Context) (customTaskURI, error) {
	sectionID, err := h.processSectionParam(c)
	if err != nil {
		return customTaskURI{}, err
	}
	taskID, err := h.processTaskParam(c)
	if err != nil {
		return customTaskURI{}, err
	}
	return customTaskURI{SectionID: sectionID, TaskID: taskID}, nil
}

// processListTasksReq binds and validates the task list query parameters.
func (h *handler) processListTasksReq(c *gin.Context) (listTasksReq, error) {
	var req listTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processAddPriorityReq(c *gin.Context) (addPriorityReq, error) {
	var req addPriorityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processCompleteReq accepts an empty body as "not confirmed".
func (h *handler) processCompleteReq(c *gin.Context) (completeReq, error) {
	var req completeReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processCreateCustomTaskReq(c *gin.Context) (createCustomTaskReq, error) {
	var req createCustomTaskReq
	sectionID, err := h.processSectionParam(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.SectionID = sectionID
	return req, nil
}

func (h *handler) processMoveDetailsReq(c *gin.Context) (map[string]any, error) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
