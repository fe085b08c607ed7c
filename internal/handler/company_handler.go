package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"newsportal/internal/service"
)

// ListCompanies - список компаний; query-параметр selection=1 включает
// вложенное представление с пользователями и их постами
func (h *Handlers) ListCompanies(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	selection := r.URL.Query().Get("selection") == "1"

	listing, err := h.CompanyService.List(r.Context(), actor, selection)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if selection {
		WriteSuccess(w, listing.Selection, http.StatusOK)
		return
	}

	WriteSuccess(w, listing.Companies, http.StatusOK)
}

// GetCompany - компания по id
func (h *Handlers) GetCompany(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	company, err := h.CompanyService.Get(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, company, http.StatusOK)
}

// CreateCompany - создание компании (только staff)
func (h *Handlers) CreateCompany(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req CompanyPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	company, err := h.CompanyService.Create(r.Context(), actor, service.CompanyRequest{
		Name:    req.Name,
		URL:     req.URL,
		Address: req.Address,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, company, http.StatusCreated)
}

// UpdateCompany - обновление компании (сотрудник компании или staff)
func (h *Handlers) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req CompanyPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	company, err := h.CompanyService.Update(r.Context(), actor, mux.Vars(r)["id"], service.CompanyRequest{
		Name:    req.Name,
		URL:     req.URL,
		Address: req.Address,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, company, http.StatusOK)
}

// DeleteCompany - удаление компании (только staff)
func (h *Handlers) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.CompanyService.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Компания удалена"}, http.StatusOK)
}

// UploadCompanyLogo - загрузка логотипа компании в объектное хранилище
func (h *Handlers) UploadCompanyLogo(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		WriteError(w, "Отсутствует файл logo", http.StatusBadRequest)
		return
	}
	defer file.Close()

	company, err := h.CompanyService.UploadLogo(r.Context(), actor, mux.Vars(r)["id"], header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, company, http.StatusOK)
}
