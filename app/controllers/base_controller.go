package controllers

import (
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"github.com/urfave/cli"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hyderoo/dewa-wo-sub001/app/gateway"
	"github.com/hyderoo/dewa-wo-sub001/app/jobs"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
	"github.com/hyderoo/dewa-wo-sub001/database/seeders"
)

type Server struct {
	DB        *gorm.DB
	Router    *mux.Router
	AppConfig *AppConfig
	Redis     *redis.Client
	Queue     *asynq.Client
	Gateway   *gateway.Client
}

type AppConfig struct {
	AppName            string
	AppEnv             string
	AppPort            string
	AppURL             string
	RedisAddr          string
	RedisPassword      string
	GatewayBaseURL     string
	GatewayServerKey   string
	DownPaymentPercent string
}

type DBConfig struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBDriver   string
}

type PageLink struct {
	Page          int32
	Url           string
	IsCurrentPage bool
}

type PaginationLinks struct {
	CurrentPage string
	NextPage    string
	PrevPage    string
	TotalRows   int32
	TotalPages  int32
	Links       []PageLink
}

type PaginationParams struct {
	Path        string
	TotalRows   int32
	PerPage     int32
	CurrentPage int32
}

type Result struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

var store *sessions.CookieStore

var sessionFlash = "flash-session"
var sessionUser = "user-session"

func initSessionStore() {
	key := os.Getenv("SESSION_KEY")
	if key == "" {
		// fallback dev; untuk production WAJIB isi SESSION_KEY di .env
		key = "dev-secret-change-me"
	}
	store = sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 hari
		HttpOnly: true,
	}
}

func (server *Server) Initialize(appConfig AppConfig, dbConfig DBConfig) {
	fmt.Println("Welcome to " + appConfig.AppName)

	server.initializeDB(dbConfig)
	server.initializeAppConfig(appConfig)
	server.initializeRedis(appConfig)
	server.initializeQueue(appConfig)
	server.Gateway = gateway.NewClient(appConfig.GatewayBaseURL, appConfig.GatewayServerKey)
	initSessionStore()
	server.initializeRoutes()
}

func (server *Server) Run(addr string) {
	fmt.Printf("Listening to port %s", addr)

	// _method spoofing untuk form PUT/PATCH/DELETE + access log
	handler := handlers.HTTPMethodOverrideHandler(server.Router)
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	log.Fatal(http.ListenAndServe(addr, handler))
}

func (server *Server) initializeDB(dbConfig DBConfig) {
	var err error
	if dbConfig.DBDriver == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", dbConfig.DBUser, dbConfig.DBPassword, dbConfig.DBHost, dbConfig.DBPort, dbConfig.DBName)
		server.DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta", dbConfig.DBHost, dbConfig.DBUser, dbConfig.DBPassword, dbConfig.DBName, dbConfig.DBPort)
		server.DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		panic("Failed on connecting to the database server")
	}
}

func (server *Server) initializeAppConfig(appConfig AppConfig) {
	server.AppConfig = &appConfig
}

func (server *Server) initializeRedis(appConfig AppConfig) {
	server.Redis = redis.NewClient(&redis.Options{
		Addr:     appConfig.RedisAddr,
		Password: appConfig.RedisPassword,
		DB:       0,
	})
}

func (server *Server) initializeQueue(appConfig AppConfig) {
	server.Queue = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     appConfig.RedisAddr,
		Password: appConfig.RedisPassword,
		DB:       0,
	})
}

func (server *Server) dbMigrate() {
	for _, model := range models.RegisterModels() {
		err := server.DB.AutoMigrate(model.Model)

		if err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("Database migrated successfully.")
}

func (server *Server) InitCommands(config AppConfig, dbConfig DBConfig) {
	server.initializeDB(dbConfig)
	server.initializeAppConfig(config)
	initSessionStore()

	cmdApp := cli.NewApp()
	cmdApp.Commands = []cli.Command{
		{
			Name: "db:migrate",
			Action: func(c *cli.Context) error {
				server.dbMigrate()
				return nil
			},
		},
		{
			Name: "db:seed",
			Action: func(c *cli.Context) error {
				err := seeders.DBSeed(server.DB)
				if err != nil {
					log.Fatal(err)
				}

				return nil
			},
		},
		{
			Name: "worker",
			Action: func(c *cli.Context) error {
				server.runWorker(config)
				return nil
			},
		},
	}

	err := cmdApp.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// runWorker: jalankan worker asynq untuk task payment:expire (blocking).
func (server *Server) runWorker(config AppConfig) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	}

	server.initializeRedis(config)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
			backoff := []time.Duration{1, 3, 5, 10, 15} // dalam menit
			if n == 0 {
				return 0
			}
			if n <= len(backoff) {
				return backoff[n-1] * time.Minute
			}
			return 15 * time.Minute
		},
	})

	processor := jobs.NewPaymentProcessor(server.DB, server.Redis)

	muxer := asynq.NewServeMux()
	muxer.HandleFunc(jobs.TaskPaymentExpire, processor.ProcessTask)

	log.Println("Worker started, waiting for jobs...")

	if err := srv.Run(muxer); err != nil {
		log.Fatal(err)
	}
}

func GetPaginationLinks(config *AppConfig, params PaginationParams) (PaginationLinks, error) {
	var links []PageLink

	totalPages := int32(math.Ceil(float64(params.TotalRows) / float64(params.PerPage)))

	for i := 1; int32(i) <= totalPages; i++ {
		links = append(links, PageLink{
			Page:          int32(i),
			Url:           fmt.Sprintf("%s/%s?page=%s", config.AppURL, params.Path, fmt.Sprint(i)),
			IsCurrentPage: int32(i) == params.CurrentPage,
		})
	}

	var nextPage int32
	var prevPage int32

	prevPage = 1
	nextPage = totalPages

	if params.CurrentPage > 2 {
		prevPage = params.CurrentPage - 1
	}

	if params.CurrentPage < totalPages {
		nextPage = params.CurrentPage + 1
	}

	return PaginationLinks{
		CurrentPage: fmt.Sprintf("%s/%s?page=%s", config.AppURL, params.Path, fmt.Sprint(params.CurrentPage)),
		NextPage:    fmt.Sprintf("%s/%s?page=%s", config.AppURL, params.Path, fmt.Sprint(nextPage)),
		PrevPage:    fmt.Sprintf("%s/%s?page=%s", config.AppURL, params.Path, fmt.Sprint(prevPage)),
		TotalRows:   params.TotalRows,
		TotalPages:  totalPages,
		Links:       links,
	}, nil
}

func SetFlash(w http.ResponseWriter, r *http.Request, name string, value string) {
	session, err := store.Get(r, sessionFlash)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	session.AddFlash(value, name)
	session.Save(r, w)
}

func GetFlash(w http.ResponseWriter, r *http.Request, name string) []string {
	session, err := store.Get(r, sessionFlash)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil
	}

	fm := session.Flashes(name)
	if len(fm) == 0 {
		return nil
	}

	session.Save(r, w)
	var flashes []string
	for _, fl := range fm {
		flashes = append(flashes, fl.(string))
	}

	return flashes
}

func IsLoggedIn(r *http.Request) bool {
	if store == nil { // guard
		return false
	}
	session, _ := store.Get(r, sessionUser)
	return session.Values["id"] != nil
}

func ComparePassword(password string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

func MakePassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(hashedPassword), err
}

func (server *Server) CurrentUser(w http.ResponseWriter, r *http.Request) *models.User {
	if !IsLoggedIn(r) {
		return nil
	}

	session, _ := store.Get(r, sessionUser)

	userModel := models.User{}
	user, err := userModel.FindByID(server.DB, session.Values["id"].(string))
	if err != nil {
		session.Values["id"] = nil
		session.Save(r, w)
		return nil
	}

	return user
}

func (server *Server) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsLoggedIn(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (server *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsLoggedIn(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user := server.CurrentUser(w, r)
		if user == nil || !user.IsAdmin {
			SetFlash(w, r, "error", "Anda tidak memiliki akses.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// DownPaymentPercentDecimal: default persentase uang muka dari config.
func (server *Server) DownPaymentPercentDecimal() decimal.Decimal {
	pct, err := decimal.NewFromString(server.AppConfig.DownPaymentPercent)
	if err != nil || pct.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(30)
	}

	return pct
}

// formatRupiah: helper untuk format harga jadi Rp xxx
func formatRupiah(price interface{}) string {
	switch v := price.(type) {
	case int:
		return fmt.Sprintf("Rp %d", v)
	case int64:
		return fmt.Sprintf("Rp %d", v)
	case float64:
		return fmt.Sprintf("Rp %d", int64(v))
	case decimal.Decimal:
		return "Rp " + v.StringFixed(0)
	default:
		return fmt.Sprintf("Rp %v", v)
	}
}

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatRupiah": formatRupiah,
		"lower":        strings.ToLower,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"seq": func(from, to int) []int {
			if to < from {
				return []int{}
			}
			s := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				s = append(s, i)
			}
			return s
		},
		"urlValuesWithPage": func(v url.Values, page int) string {
			q := url.Values{}
			for key, vals := range v {
				for _, val := range vals {
					q.Add(key, val)
				}
			}

			q.Set("page", strconv.Itoa(page))
			return q.Encode()
		},
	}
}

func userRender() *render.Render {
	return render.New(render.Options{
		Directory:  "templates",
		Layout:     "layout",
		Extensions: []string{".html", ".tmpl"},
		Funcs:      []template.FuncMap{templateFuncMap()},
	})
}

func adminRender() *render.Render {
	return render.New(render.Options{
		Directory:  "templates",
		Layout:     "admin_layout",
		Extensions: []string{".html", ".tmpl"},
		Funcs:      []template.FuncMap{templateFuncMap()},
	})
}
