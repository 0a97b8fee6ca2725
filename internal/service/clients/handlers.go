package clients

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	svcErr "github.com/Tnmoxa/epg-task/internal/errors"
)

type createForm struct {
	Gender    string   `form:"gender" binding:"required"`
	FirstName string   `form:"first_name" binding:"required"`
	LastName  string   `form:"last_name" binding:"required"`
	Email     string   `form:"email" binding:"required,email"`
	Password  string   `form:"password" binding:"required"`
	Latitude  *float64 `form:"latitude"`
	Longitude *float64 `form:"longitude"`
}

// handleCreate serves POST /clients/create (multipart: avatar + profile fields).
func (s *Service) handleCreate(c *gin.Context) {
	var form createForm
	if err := c.ShouldBind(&form); err != nil {
		svcErr.JSON(c, svcErr.Validation(err.Error()))
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		svcErr.JSON(c, svcErr.Validation("avatar file is required"))
		return
	}

	avatarRef := avatar.Filename
	if s.appCtx.Avatars != nil {
		f, err := avatar.Open()
		if err != nil {
			svcErr.JSON(c, svcErr.Validation("avatar file is not readable"))
			return
		}
		defer f.Close()

		ref, err := s.appCtx.Avatars.Upload(c.Request.Context(), f, avatar.Size, avatar.Header.Get("Content-Type"))
		if err != nil {
			s.appCtx.Logger.Error("avatar upload failed", "err", err)
			svcErr.JSON(c, err)
			return
		}
		avatarRef = ref
	}

	if _, err := s.Register(c.Request.Context(), RegisterParams{
		Gender:    form.Gender,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
		Latitude:  form.Latitude,
		Longitude: form.Longitude,
		AvatarRef: avatarRef,
	}); err != nil {
		svcErr.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ok"})
}

// handleMatch serves POST /clients/:id/match?email=<rater email>.
func (s *Service) handleMatch(c *gin.Context) {
	ratedID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		svcErr.JSON(c, svcErr.Validation("id must be a valid uint64"))
		return
	}

	email := c.Query("email")
	if email == "" {
		svcErr.JSON(c, svcErr.Validation("email query parameter is required"))
		return
	}

	outcome, err := s.SubmitRating(c.Request.Context(), email, ratedID, s.appCtx.Cfg.Rating.DailyLimit)
	if err != nil {
		svcErr.JSON(c, err)
		return
	}

	msg := "Rating recorded"
	if outcome == OutcomeMutualMatch {
		msg = "It's a mutual match! Check your email"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

type tokenForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// handleToken serves POST /clients/token (the auth placeholder).
func (s *Service) handleToken(c *gin.Context) {
	var form tokenForm
	if err := c.ShouldBind(&form); err != nil {
		svcErr.JSON(c, svcErr.Validation(err.Error()))
		return
	}

	token, err := s.IssueToken(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		svcErr.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}
