package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (server *Server) initializeRoutes() {
	server.Router = mux.NewRouter()
	server.Router.HandleFunc("/", server.Home).Methods("GET")

	server.Router.HandleFunc("/login", server.Login).Methods("GET")
	server.Router.HandleFunc("/login", server.DoLogin).Methods("POST")
	server.Router.HandleFunc("/register", server.Register).Methods("GET")
	server.Router.HandleFunc("/register", server.DoRegister).Methods("POST")
	server.Router.HandleFunc("/logout", server.Logout).Methods("GET")

	// Halaman publik
	server.Router.HandleFunc("/catalogs", server.Catalogs).Methods("GET")
	server.Router.HandleFunc("/catalogs/{slug}", server.GetCatalogBySlug).Methods("GET")
	server.Router.HandleFunc("/services", server.Services).Methods("GET")
	server.Router.HandleFunc("/portfolios", server.Portfolios).Methods("GET")
	server.Router.HandleFunc("/team", server.Team).Methods("GET")

	// ORDERS (customer)
	server.Router.HandleFunc("/orders", server.RequireLogin(server.OrdersIndex)).Methods("GET")
	server.Router.HandleFunc("/orders", server.RequireLogin(server.CreateOrder)).Methods("POST")
	server.Router.HandleFunc("/orders/{id}", server.RequireLogin(server.ShowOrder)).Methods("GET")

	// PAYMENTS (customer)
	server.Router.HandleFunc("/orders/{id}/payment", server.RequireLogin(server.PaymentDetail)).Methods("GET")
	server.Router.HandleFunc("/orders/{id}/payments", server.RequireLogin(server.StoreBankTransferPayment)).Methods("POST")
	server.Router.HandleFunc("/orders/{id}/payments/virtual-account", server.RequireLogin(server.StoreVirtualAccountPayment)).Methods("POST")
	server.Router.HandleFunc("/payments/{id}", server.RequireLogin(server.PaymentStatus)).Methods("GET")

	// API: cek status (pemilik order saja) + webhook gateway
	server.Router.HandleFunc("/api/v1/payments/{id}/check-status", server.RequireLogin(server.CheckPaymentStatus)).Methods("GET")
	server.Router.HandleFunc("/api/v1/payments/notification", server.HandleGatewayNotification).Methods("POST")

	// PROFILE
	server.Router.HandleFunc("/profile", server.RequireLogin(server.ProfileIndex)).Methods("GET")
	server.Router.HandleFunc("/profile", server.RequireLogin(server.ProfileUpdate)).Methods("POST")
	server.Router.HandleFunc("/profile/password", server.RequireLogin(server.ProfilePasswordUpdate)).Methods("POST")

	// STATIC FILES (CSS, JS, gambar di /public)
	staticFileDirectory := http.Dir("./public/")
	staticFileHandler := http.StripPrefix("/public/", http.FileServer(staticFileDirectory))
	server.Router.PathPrefix("/public/").Handler(staticFileHandler).Methods("GET")

	// UPLOADS (gambar katalog, logo bank, bukti transfer, dst)
	uploadDir := http.Dir("./public/uploads")
	uploadHandler := http.StripPrefix("/uploads/", http.FileServer(uploadDir))
	server.Router.PathPrefix("/uploads/").Handler(uploadHandler).Methods("GET")

	// =======================
	//      ADMIN
	// =======================
	server.Router.HandleFunc("/admin/dashboard", server.RequireAdmin(server.AdminDashboard)).Methods("GET")

	// ADMIN ORDERS
	server.Router.HandleFunc("/admin/orders", server.RequireAdmin(server.AdminOrdersIndex)).Methods("GET")
	server.Router.HandleFunc("/admin/orders/{id}", server.RequireAdmin(server.AdminOrdersShow)).Methods("GET")
	server.Router.HandleFunc("/admin/orders/{id}/status", server.RequireAdmin(server.AdminUpdateOrderStatus)).Methods("POST", "PATCH")
	server.Router.HandleFunc("/admin/orders/{id}/review", server.RequireAdmin(server.AdminSubmitReview)).Methods("POST")

	// ADMIN PAYMENTS
	server.Router.HandleFunc("/admin/payments", server.RequireAdmin(server.AdminPaymentsIndex)).Methods("GET")
	server.Router.HandleFunc("/admin/payments/import", server.RequireAdmin(server.ShowImportMutationsPage)).Methods("GET")
	server.Router.HandleFunc("/admin/payments/import", server.RequireAdmin(server.HandleImportMutationsCSV)).Methods("POST")
	server.Router.HandleFunc("/admin/payments/auto-match", server.RequireAdmin(server.AutoMatchPayments)).Methods("POST")
	server.Router.HandleFunc("/admin/payments/export", server.RequireAdmin(server.ExportPaymentsRecap)).Methods("GET")
	server.Router.HandleFunc("/admin/payments/{id}", server.RequireAdmin(server.AdminPaymentsShow)).Methods("GET")
	server.Router.HandleFunc("/admin/payments/{id}/verify", server.RequireAdmin(server.AdminVerifyPayment)).Methods("POST", "PATCH")

	// ADMIN CRUD
	registerAdminCRUD(server.Router, "catalogs", server, adminCRUDHandlers{
		Index:  server.AdminCatalogsIndex,
		New:    server.AdminCatalogsNew,
		Create: server.AdminCatalogsCreate,
		Edit:   server.AdminCatalogsEdit,
		Update: server.AdminCatalogsUpdate,
		Delete: server.AdminCatalogsDelete,
	})
	server.Router.HandleFunc("/admin/catalogs/{id}/features", server.RequireAdmin(server.AdminCatalogFeatureCreate)).Methods("POST")
	server.Router.HandleFunc("/admin/catalogs/{id}/features/{featureID}/delete", server.RequireAdmin(server.AdminCatalogFeatureDelete)).Methods("POST", "DELETE")

	registerAdminCRUD(server.Router, "services", server, adminCRUDHandlers{
		Index:  server.AdminServicesIndex,
		New:    server.AdminServicesNew,
		Create: server.AdminServicesCreate,
		Edit:   server.AdminServicesEdit,
		Update: server.AdminServicesUpdate,
		Delete: server.AdminServicesDelete,
	})
	registerAdminCRUD(server.Router, "portfolios", server, adminCRUDHandlers{
		Index:  server.AdminPortfoliosIndex,
		New:    server.AdminPortfoliosNew,
		Create: server.AdminPortfoliosCreate,
		Edit:   server.AdminPortfoliosEdit,
		Update: server.AdminPortfoliosUpdate,
		Delete: server.AdminPortfoliosDelete,
	})
	registerAdminCRUD(server.Router, "teams", server, adminCRUDHandlers{
		Index:  server.AdminTeamsIndex,
		New:    server.AdminTeamsNew,
		Create: server.AdminTeamsCreate,
		Edit:   server.AdminTeamsEdit,
		Update: server.AdminTeamsUpdate,
		Delete: server.AdminTeamsDelete,
	})
	registerAdminCRUD(server.Router, "banks", server, adminCRUDHandlers{
		Index:  server.AdminBanksIndex,
		New:    server.AdminBanksNew,
		Create: server.AdminBanksCreate,
		Edit:   server.AdminBanksEdit,
		Update: server.AdminBanksUpdate,
		Delete: server.AdminBanksDelete,
	})
	registerAdminCRUD(server.Router, "virtual-accounts", server, adminCRUDHandlers{
		Index:  server.AdminVirtualAccountsIndex,
		New:    server.AdminVirtualAccountsNew,
		Create: server.AdminVirtualAccountsCreate,
		Edit:   server.AdminVirtualAccountsEdit,
		Update: server.AdminVirtualAccountsUpdate,
		Delete: server.AdminVirtualAccountsDelete,
	})
	registerAdminCRUD(server.Router, "users", server, adminCRUDHandlers{
		Index:  server.AdminUsersIndex,
		New:    server.AdminUsersNew,
		Create: server.AdminUsersCreate,
		Edit:   server.AdminUsersEdit,
		Update: server.AdminUsersUpdate,
		Delete: server.AdminUsersDelete,
	})
}

type adminCRUDHandlers struct {
	Index  http.HandlerFunc
	New    http.HandlerFunc
	Create http.HandlerFunc
	Edit   http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// registerAdminCRUD: semua resource admin memakai pola route yang sama.
// Update dan delete menerima POST dengan _method spoofing selain verb asli.
func registerAdminCRUD(router *mux.Router, resource string, server *Server, h adminCRUDHandlers) {
	base := "/admin/" + resource

	router.HandleFunc(base, server.RequireAdmin(h.Index)).Methods("GET")
	router.HandleFunc(base+"/new", server.RequireAdmin(h.New)).Methods("GET")
	router.HandleFunc(base, server.RequireAdmin(h.Create)).Methods("POST")
	router.HandleFunc(base+"/{id}/edit", server.RequireAdmin(h.Edit)).Methods("GET")
	router.HandleFunc(base+"/{id}", server.RequireAdmin(h.Update)).Methods("POST", "PUT")
	router.HandleFunc(base+"/{id}/delete", server.RequireAdmin(h.Delete)).Methods("POST", "DELETE")
}
