package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mural-studio/backend/domain"
	"github.com/mural-studio/backend/notify"
)

type addMuralRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updateMuralRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
}

type addMessageRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,excludesall=\r\n"`
	Message string `json:"message" validate:"required,max=5000"`
}

type homepageRequest struct {
	Greeting string `json:"greeting" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

type updateHomepageRequest struct {
	Greeting *string `json:"greeting" validate:"omitempty,min=1"`
	Message  *string `json:"message" validate:"omitempty,min=1"`
}

type igPostRequest struct {
	IGID      string    `json:"igId" validate:"required"`
	Caption   string    `json:"caption"`
	Permalink string    `json:"permalink" validate:"required,url"`
	MediaURL  string    `json:"mediaUrl" validate:"required,url"`
	MediaType string    `json:"mediaType" validate:"required,oneof=IMAGE VIDEO CAROUSEL_ALBUM"`
	Posted    time.Time `json:"posted" validate:"required"`
}

func (r igPostRequest) post() domain.IGPost {
	return domain.IGPost{
		IGID:      r.IGID,
		Caption:   r.Caption,
		Permalink: r.Permalink,
		MediaURL:  r.MediaURL,
		MediaType: r.MediaType,
		Posted:    r.Posted,
	}
}

type replaceIGPostsRequest struct {
	Posts []igPostRequest `json:"posts" validate:"dive"`
}

// murals

func (h *Handler) GetMurals(c echo.Context) error {
	murals, err := h.MuralRepo.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, murals)
}

func (h *Handler) GetArchivedMurals(c echo.Context) error {
	murals, err := h.MuralRepo.GetArchived(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, murals)
}

func (h *Handler) GetMural(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Mural, error) {
		return h.MuralRepo.Get(c.Request().Context(), id)
	})
}

func (h *Handler) AddMural(c echo.Context) error {
	req := new(addMuralRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	mural, err := h.MuralRepo.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, mural)
}

func (h *Handler) UpdateMural(c echo.Context) error {
	req := new(updateMuralRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	return handleID(c, http.StatusOK, func(id int64) (domain.Mural, error) {
		return h.MuralRepo.Update(c.Request().Context(), id,
			domain.MuralUpdate{Name: req.Name, Description: req.Description})
	})
}

func (h *Handler) ArchiveMural(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Mural, error) {
		return h.MuralRepo.Archive(c.Request().Context(), id)
	})
}

func (h *Handler) UnarchiveMural(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Mural, error) {
		return h.MuralRepo.Unarchive(c.Request().Context(), id)
	})
}

func (h *Handler) UploadMuralImage(c echo.Context) error {
	ctx := c.Request().Context()
	return handleID(c, http.StatusOK, func(id int64) (domain.Mural, error) {
		before, err := h.MuralRepo.Get(ctx, id)
		if err != nil {
			return domain.Mural{}, err
		}
		url, err := h.saveUpload(c)
		if err != nil {
			return domain.Mural{}, err
		}
		mural, err := h.MuralRepo.UploadImage(ctx, id, url)
		if err != nil {
			h.Images.Remove(url)
			return domain.Mural{}, err
		}
		if before.Image != nil {
			h.Images.Remove(*before.Image)
		}
		return mural, nil
	})
}

func (h *Handler) DeleteMural(c echo.Context) error {
	ctx := c.Request().Context()
	return noContent(c, func(id int64) error {
		before, err := h.MuralRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := h.MuralRepo.Delete(ctx, id); err != nil {
			return err
		}
		if before.Image != nil {
			h.Images.Remove(*before.Image)
		}
		return nil
	})
}

// messages

// AddMessage stores a contact form submission and forwards it to the studio.
func (h *Handler) AddMessage(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(addMessageRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	msg, err := h.MessageRepo.Create(ctx, req.Email, req.Name, req.Message)
	if err != nil {
		return httpError(c, err)
	}

	subject, body := notify.NewMessage(msg.Email, msg.Name, msg.Message)
	notify.BestEffort(ctx, h.Mailer, h.AdminEmail, subject, body)

	return c.JSON(http.StatusCreated, msg)
}

// GetMessages lists the inbox, or the archive with ?archived=true.
func (h *Handler) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		msgs []domain.Message
		err  error
	)
	if c.QueryParam("archived") == "true" {
		msgs, err = h.MessageRepo.GetArchived(ctx)
	} else {
		msgs, err = h.MessageRepo.GetAll(ctx)
	}
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *Handler) GetMessage(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Message, error) {
		return h.MessageRepo.Get(c.Request().Context(), id)
	})
}

func (h *Handler) ArchiveMessage(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Message, error) {
		return h.MessageRepo.Archive(c.Request().Context(), id)
	})
}

func (h *Handler) ActivateMessage(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Message, error) {
		return h.MessageRepo.Activate(c.Request().Context(), id)
	})
}

func (h *Handler) DeleteMessage(c echo.Context) error {
	return noContent(c, func(id int64) error {
		return h.MessageRepo.Remove(c.Request().Context(), id)
	})
}

// homepage

func (h *Handler) GetHomepage(c echo.Context) error {
	page, err := h.HomepageRepo.GetActive(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetHomepages(c echo.Context) error {
	pages, err := h.HomepageRepo.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, pages)
}

func (h *Handler) AddHomepage(c echo.Context) error {
	req := new(homepageRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	page, err := h.HomepageRepo.Create(c.Request().Context(), req.Greeting, req.Message)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, page)
}

func (h *Handler) UpdateHomepage(c echo.Context) error {
	req := new(updateHomepageRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	return handleID(c, http.StatusOK, func(id int64) (domain.Homepage, error) {
		return h.HomepageRepo.Update(c.Request().Context(), id,
			domain.HomepageUpdate{Greeting: req.Greeting, Message: req.Message})
	})
}

func (h *Handler) DeleteHomepage(c echo.Context) error {
	return noContent(c, func(id int64) error {
		return h.HomepageRepo.Delete(c.Request().Context(), id)
	})
}

// instagram cache

func (h *Handler) GetIGPosts(c echo.Context) error {
	posts, err := h.IGPostRepo.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetIGPost(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.IGPost, error) {
		return h.IGPostRepo.Get(c.Request().Context(), id)
	})
}

func (h *Handler) AddIGPost(c echo.Context) error {
	req := new(igPostRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	post, err := h.IGPostRepo.Upsert(c.Request().Context(), req.post())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// ReplaceIGPosts swaps the whole cache for the posts in the body.
func (h *Handler) ReplaceIGPosts(c echo.Context) error {
	req := new(replaceIGPostsRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	posts := make([]domain.IGPost, 0, len(req.Posts))
	for _, p := range req.Posts {
		posts = append(posts, p.post())
	}
	stored, err := h.IGPostRepo.Replace(c.Request().Context(), posts)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *Handler) DeleteIGPost(c echo.Context) error {
	return noContent(c, func(id int64) error {
		return h.IGPostRepo.Delete(c.Request().Context(), id)
	})
}

func (h *Handler) DeleteIGPosts(c echo.Context) error {
	if err := h.IGPostRepo.DeleteAll(c.Request().Context()); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
