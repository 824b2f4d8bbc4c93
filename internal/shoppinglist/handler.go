package shoppinglist

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/shopping-list-backend/internal/auth"
	"github.com/wichananm65/shopping-list-backend/internal/errormap"
)

// Handler exposes the shoppingList command surface. Every command runs the
// same pipeline: authorize, validate (aggregating all field violations),
// execute, envelope. The ownership check for owner-gated commands runs
// right after the record is loaded.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/shoppingList/create", h.create)
	app.Get("/shoppingList/get", h.get)
	app.Get("/shoppingList/list", h.list)
	app.Put("/shoppingList/update/:id", h.update)
	app.Delete("/shoppingList/delete/:id", h.delete)
	app.Post("/shoppingList/addMember", h.addMember)
	app.Post("/shoppingList/removeMember", h.removeMember)
	app.Post("/shoppingList/leave", h.leave)
	app.Post("/shoppingList/addItem", h.addItem)
	app.Post("/shoppingList/removeItem", h.removeItem)
	app.Post("/shoppingList/setItemResolved", h.setItemResolved)
}

// memberProfiles gates the commands open to any registered user.
var memberProfiles = []string{auth.ProfileStandardUsers, auth.ProfileAuthorities}

type detailResponse struct {
	ShoppingList
	UuAppErrorMap errormap.Map `json:"uuAppErrorMap"`
}

type pageInfo struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

type listResponse struct {
	ItemList      []Summary    `json:"itemList"`
	PageInfo      pageInfo     `json:"pageInfo"`
	UuAppErrorMap errormap.Map `json:"uuAppErrorMap"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdCreate)
	}
	if !auth.Authorize(caller, memberProfiles) {
		return unauthorized(c, cmdCreate)
	}

	in := new(createInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdCreate, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	created, err := h.service.Create(caller.UuIdentity, trimmed(in.Name))
	if err != nil {
		return failed(c, cmdCreate, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detailResponse{ShoppingList: created, UuAppErrorMap: errormap.New()})
}

func (h *Handler) get(c *fiber.Ctx) error {
	if _, err := auth.FromCtx(c); err != nil {
		return unauthenticated(c, cmdGet)
	}

	in := &getInput{ID: c.Query("id")}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdGet, in.ID)
		}
		return failed(c, cmdGet, err)
	}
	return c.JSON(detailResponse{ShoppingList: list, UuAppErrorMap: errormap.New()})
}

func (h *Handler) list(c *fiber.Ctx) error {
	if _, err := auth.FromCtx(c); err != nil {
		return unauthenticated(c, cmdList)
	}

	in := &listInput{PageIndexRaw: c.Query("pageIndex"), PageSizeRaw: c.Query("pageSize")}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	summaries, total, err := h.service.List(in.PageIndex, in.PageSize)
	if err != nil {
		return failed(c, cmdList, err)
	}
	return c.JSON(listResponse{
		ItemList:      summaries,
		PageInfo:      pageInfo{PageIndex: in.PageIndex, PageSize: in.PageSize, Total: total},
		UuAppErrorMap: errormap.New(),
	})
}

func (h *Handler) update(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdUpdate)
	}
	if !auth.Authorize(caller, memberProfiles) {
		return unauthorized(c, cmdUpdate)
	}

	in := new(updateInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdUpdate, err)
	}
	in.ID = c.Params("id")
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdUpdate, in.ID)
		}
		return failed(c, cmdUpdate, err)
	}
	if !canManage(caller, list) {
		return unauthorized(c, cmdUpdate)
	}

	updated, err := h.service.Update(in.ID, trimmed(in.Name), in.State)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdUpdate, in.ID)
		}
		return failed(c, cmdUpdate, err)
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdDelete)
	}
	if !auth.Authorize(caller, memberProfiles) {
		return unauthorized(c, cmdDelete)
	}

	in := &deleteInput{ID: c.Params("id")}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdDelete, in.ID)
		}
		return failed(c, cmdDelete, err)
	}
	if !canManage(caller, list) {
		return unauthorized(c, cmdDelete)
	}

	if err := h.service.Delete(in.ID); err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdDelete, in.ID)
		}
		return failed(c, cmdDelete, err)
	}
	return c.JSON(errormap.Wrap(nil, nil))
}

func (h *Handler) addMember(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdAddMember)
	}
	if !auth.Authorize(caller, memberProfiles) {
		return unauthorized(c, cmdAddMember)
	}

	in := new(addMemberInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdAddMember, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ListID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdAddMember, in.ListID)
		}
		return failed(c, cmdAddMember, err)
	}
	if !canManage(caller, list) {
		return unauthorized(c, cmdAddMember)
	}

	updated, err := h.service.AddMember(in.ListID, trimmed(in.UuIdentity), in.Role)
	if err != nil {
		return failed(c, cmdAddMember, err)
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

func (h *Handler) removeMember(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdRemoveMember)
	}
	if !auth.Authorize(caller, memberProfiles) {
		return unauthorized(c, cmdRemoveMember)
	}

	in := new(removeMemberInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdRemoveMember, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ListID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdRemoveMember, in.ListID)
		}
		return failed(c, cmdRemoveMember, err)
	}
	if !canManage(caller, list) {
		return unauthorized(c, cmdRemoveMember)
	}

	updated, err := h.service.RemoveMember(in.ListID, trimmed(in.UuIdentity))
	if err != nil {
		return failed(c, cmdRemoveMember, err)
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

func (h *Handler) leave(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdLeave)
	}

	in := new(leaveInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdLeave, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ListID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdLeave, in.ListID)
		}
		return failed(c, cmdLeave, err)
	}
	// only members can leave; the record must not leak to strangers
	if !list.IsMember(caller.UuIdentity) {
		return unauthorized(c, cmdLeave)
	}

	updated, err := h.service.Leave(in.ListID, caller.UuIdentity)
	if err != nil {
		switch err {
		case ErrNotFound:
			return notFound(c, cmdLeave, in.ListID)
		case ErrOwnerLeave:
			errs := errormap.New()
			errs.Add(cmdLeave+"/ownerCannotLeave", "the owner cannot leave its own list", map[string]any{"listId": in.ListID})
			return c.Status(fiber.StatusBadRequest).JSON(errormap.Wrap(nil, errs))
		default:
			return failed(c, cmdLeave, err)
		}
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdAddItem)
	}

	in := new(addItemInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdAddItem, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ListID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdAddItem, in.ListID)
		}
		return failed(c, cmdAddItem, err)
	}
	if !canEditItems(caller, list) {
		return unauthorized(c, cmdAddItem)
	}

	updated, err := h.service.AddItem(in.ListID, trimmed(in.Name), in.Quantity, in.Unit)
	if err != nil {
		return failed(c, cmdAddItem, err)
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdRemoveItem)
	}

	in := new(removeItemInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdRemoveItem, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ListID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdRemoveItem, in.ListID)
		}
		return failed(c, cmdRemoveItem, err)
	}
	if !canEditItems(caller, list) {
		return unauthorized(c, cmdRemoveItem)
	}

	updated, err := h.service.RemoveItem(in.ListID, in.ItemID)
	if err != nil {
		return failed(c, cmdRemoveItem, err)
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

func (h *Handler) setItemResolved(c *fiber.Ctx) error {
	caller, err := auth.FromCtx(c)
	if err != nil {
		return unauthenticated(c, cmdSetItemResolved)
	}

	in := new(setItemResolvedInput)
	if err := c.BodyParser(in); err != nil {
		return invalidDtoIn(c, cmdSetItemResolved, err)
	}
	if errs := in.validate(); !errs.Empty() {
		return invalidInput(c, errs)
	}

	list, err := h.service.Get(in.ListID)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdSetItemResolved, in.ListID)
		}
		return failed(c, cmdSetItemResolved, err)
	}
	if !canEditItems(caller, list) {
		return unauthorized(c, cmdSetItemResolved)
	}

	updated, err := h.service.SetItemResolved(in.ListID, in.ItemID, in.Resolved)
	if err != nil {
		if err == ErrNotFound {
			return notFound(c, cmdSetItemResolved, in.ItemID)
		}
		return failed(c, cmdSetItemResolved, err)
	}
	return c.JSON(detailResponse{ShoppingList: updated, UuAppErrorMap: errormap.New()})
}

// canManage allows the list owner; Authorities may manage any list.
func canManage(caller auth.Identity, list ShoppingList) bool {
	return caller.HasProfile(auth.ProfileAuthorities) || list.UuIdentity == caller.UuIdentity
}

// canEditItems allows any member of the list; Authorities bypass.
func canEditItems(caller auth.Identity, list ShoppingList) bool {
	return caller.HasProfile(auth.ProfileAuthorities) || list.IsMember(caller.UuIdentity)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func unauthenticated(c *fiber.Ctx, cmd string) error {
	errs := errormap.New()
	errs.Add(cmd+"/unauthorized", "request carries no valid identity", nil)
	return c.Status(fiber.StatusUnauthorized).JSON(errormap.Wrap(nil, errs))
}

func unauthorized(c *fiber.Ctx, cmd string) error {
	errs := errormap.New()
	errs.Add(cmd+"/unauthorized", "caller is not authorized to run "+cmd, nil)
	return c.Status(fiber.StatusForbidden).JSON(errormap.Wrap(nil, errs))
}

func invalidDtoIn(c *fiber.Ctx, cmd string, err error) error {
	errs := errormap.New()
	errs.Add(cmd+"/invalidDtoIn", "request body is not valid JSON", map[string]any{"cause": err.Error()})
	return c.Status(fiber.StatusBadRequest).JSON(errormap.Wrap(nil, errs))
}

func invalidInput(c *fiber.Ctx, errs errormap.Map) error {
	return c.Status(fiber.StatusBadRequest).JSON(errormap.Wrap(nil, errs))
}

func notFound(c *fiber.Ctx, cmd, id string) error {
	errs := errormap.New()
	errs.Add(cmd+"/notFound", "shopping list does not exist", map[string]any{"id": id})
	return c.Status(fiber.StatusNotFound).JSON(errormap.Wrap(nil, errs))
}

// failed logs the underlying store error and reports a generic entry so
// internal detail never reaches the client.
func failed(c *fiber.Ctx, cmd string, err error) error {
	log.Printf("%s failed: %v", cmd, err)
	errs := errormap.New()
	errs.Add(cmd+"/failed", "command failed unexpectedly", nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errormap.Wrap(nil, errs))
}
