package api

import (
	"net/http"

	"jobly/internal/store"

	"github.com/gin-gonic/gin"
)

type userRegisterRequest struct {
	Username  string `json:"username" binding:"required,max=25"`
	Password  string `json:"password" binding:"required,min=5,max=20"`
	FirstName string `json:"firstName" binding:"required,max=30"`
	LastName  string `json:"lastName" binding:"required,max=30"`
	Email     string `json:"email" binding:"required,email,max=60"`
	IsAdmin   bool   `json:"isAdmin"`
}

type userUpdateRequest struct {
	Password  *string `json:"password" binding:"omitempty,min=5,max=20"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Email     *string `json:"email" binding:"omitempty,email,max=60"`
}

func UserRegisterHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userRegisterRequest
		if _, ok := bindStrict(c, &req); !ok {
			return
		}
		user, err := st.RegisterUser(c.Request.Context(), store.NewUser{
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			IsAdmin:   req.IsAdmin,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

func UserListHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := st.FindUsers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

func UserGetHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := st.GetUser(c.Request.Context(), c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func UserUpdateHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userUpdateRequest
		body, ok := bindStrict(c, &req)
		if !ok {
			return
		}
		changes, ok := changesFrom(c, body)
		if !ok {
			return
		}
		user, err := st.UpdateUser(c.Request.Context(), c.Param("username"), changes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func UserDeleteHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if err := st.RemoveUser(c.Request.Context(), username); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": username})
	}
}

func UserApplyHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		if err := st.ApplyToJob(c.Request.Context(), c.Param("username"), jobID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"applied": jobID})
	}
}
