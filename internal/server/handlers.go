package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
)

// Response messages.
const (
	MsgRegistered      = "Registration successful"
	MsgLoggedIn        = "Login successful"
	MsgLoggedOut       = "Logged out successfully"
	MsgEmployeeCreated = "Employee registered successfully"
	MsgEmployeeUpdated = "Employee updated successfully"
	MsgEmployeeDeleted = "Employee deleted successfully"
	MsgInvalidBody     = "Invalid request body"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) register(c *gin.Context) {
	const opn = "Server.Register"

	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, opn, apperr.Validation(MsgInvalidBody))
		return
	}

	session, err := a.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.fail(c, opn, err)
		return
	}

	a.setSession(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"message": MsgRegistered, "username": session.Username})
}

func (a *API) login(c *gin.Context) {
	const opn = "Server.Login"

	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, opn, apperr.Validation(MsgInvalidBody))
		return
	}

	session, err := a.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.fail(c, opn, err)
		return
	}

	a.setSession(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"message": MsgLoggedIn, "username": session.Username})
}

func (a *API) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString(usernameKey)})
}

// logout always clears the cookie. A failure to revoke is logged only.
func (a *API) logout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if err := a.auth.Logout(c.Request.Context(), token); err != nil {
		a.log.WarnContext(c.Request.Context(), "Failed to revoke session", sl.Op("Server.Logout"), sl.Err(err))
	}

	a.clearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": MsgLoggedOut})
}

func (a *API) createEmployee(c *gin.Context) {
	const opn = "Server.CreateEmployee"

	var req models.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, opn, apperr.Validation(MsgInvalidBody))
		return
	}

	id, err := a.staff.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, opn, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": MsgEmployeeCreated, "id": id})
}

func (a *API) listEmployees(c *gin.Context) {
	employees, err := a.staff.List(c.Request.Context())
	if err != nil {
		a.fail(c, "Server.ListEmployees", err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (a *API) getEmployee(c *gin.Context) {
	employee, err := a.staff.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, "Server.GetEmployee", err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (a *API) updateEmployee(c *gin.Context) {
	const opn = "Server.UpdateEmployee"

	var req models.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, opn, apperr.Validation(MsgInvalidBody))
		return
	}

	updated, err := a.staff.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.fail(c, opn, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgEmployeeUpdated, "employee": updated})
}

func (a *API) deleteEmployee(c *gin.Context) {
	if err := a.staff.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, "Server.DeleteEmployee", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgEmployeeDeleted})
}
