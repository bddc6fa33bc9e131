package api

import (
	"net/http"

	"jobly/internal/sqlfrag"
	"jobly/internal/store"

	"github.com/gin-gonic/gin"
)

type jobCreateRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Salary        *int64   `json:"salary" binding:"omitempty,gte=0"`
	Equity        *float64 `json:"equity" binding:"omitempty,gte=0,lte=1"`
	CompanyHandle string   `json:"companyHandle" binding:"required,max=25"`
}

// id и companyHandle у вакансии неизменны
type jobUpdateRequest struct {
	Title  *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Salary *int64   `json:"salary" binding:"omitempty,gte=0"`
	Equity *float64 `json:"equity" binding:"omitempty,gte=0,lte=1"`
}

func JobCreateHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req jobCreateRequest
		if _, ok := bindStrict(c, &req); !ok {
			return
		}
		job, err := st.CreateJob(c.Request.Context(), store.NewJob{
			Title:         req.Title,
			Salary:        req.Salary,
			Equity:        req.Equity,
			CompanyHandle: req.CompanyHandle,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"job": job})
	}
}

func JobListHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		where, ok := compileFilters(c, sqlfrag.CompileJobFilter)
		if !ok {
			return
		}
		jobs, err := st.FindJobs(c.Request.Context(), where)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}

func JobGetHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := st.GetJob(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"job": job})
	}
}

func JobUpdateHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req jobUpdateRequest
		body, ok := bindStrict(c, &req)
		if !ok {
			return
		}
		changes, ok := changesFrom(c, body)
		if !ok {
			return
		}
		job, err := st.UpdateJob(c.Request.Context(), c.Param("id"), changes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"job": job})
	}
}

func JobDeleteHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := st.RemoveJob(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
