package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"riavet-api/internal/adapters/dian/simulated"
	mem "riavet-api/internal/adapters/storage/memory"
	"riavet-api/internal/adapters/storage/mongodb"
	pg "riavet-api/internal/adapters/storage/postgres"
	"riavet-api/internal/domain/appointments"
	"riavet-api/internal/domain/clinicalrecords"
	"riavet-api/internal/domain/dian"
	"riavet-api/internal/domain/invoices"
	"riavet-api/internal/domain/owners"
	"riavet-api/internal/domain/patients"
	"riavet-api/internal/domain/telemedicine"
	"riavet-api/internal/domain/veterinarians"
	"riavet-api/internal/middleware"
	dianport "riavet-api/internal/ports/dian"

	_ "riavet-api/docs"
)

type Options struct {
	// Opcional: si DB viene, los dominios relacionales usan Postgres;
	// si no, in-memory. Igual para Mongo con los dominios documentales.
	DB    *sql.DB
	Mongo *mongo.Database

	// Opcional: nil => cliente simulado (modo dev).
	Dian dianport.Client

	Logger             *zap.Logger
	CORSAllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Repos relacionales
	var (
		vetsRepo         veterinarians.Repository
		appointmentsRepo appointments.Repository
		ownersRepo       owners.Repository
		patientsRepo     patients.Repository
		invoicesRepo     invoices.Repository
		dianRepo         dian.Repository
	)
	if opts.DB != nil {
		vetsRepo = pg.NewVeterinariansRepo(opts.DB)
		appointmentsRepo = pg.NewAppointmentsRepo(opts.DB)
		ownersRepo = pg.NewOwnersRepo(opts.DB)
		patientsRepo = pg.NewPatientsRepo(opts.DB)
		invoicesRepo = pg.NewInvoicesRepo(opts.DB)
		dianRepo = pg.NewDianRepo(opts.DB)
	} else {
		vetsRepo = mem.NewVeterinariansRepo()
		appointmentsRepo = mem.NewAppointmentsRepo()
		ownersRepo = mem.NewOwnersRepo()
		patientsRepo = mem.NewPatientsRepo()
		invoicesRepo = mem.NewInvoicesRepo()
		dianRepo = mem.NewDianRepo()
	}

	// Repos documentales
	var (
		recordsRepo  clinicalrecords.Repository
		sessionsRepo telemedicine.Repository
	)
	if opts.Mongo != nil {
		recordsRepo = mongodb.NewClinicalRecordsRepo(opts.Mongo)
		sessionsRepo = mongodb.NewSessionsRepo(opts.Mongo)
	} else {
		recordsRepo = mem.NewClinicalRecordsRepo()
		sessionsRepo = mem.NewSessionsRepo()
	}

	dianClient := opts.Dian
	if dianClient == nil {
		dianClient = simulated.New(nil, log)
	}

	// Services por módulo
	vetsSvc := veterinarians.NewService(vetsRepo, log)
	appointmentsSvc := appointments.NewService(appointmentsRepo, vetsSvc, log)
	ownersSvc := owners.NewService(ownersRepo, log)
	patientsSvc := patients.NewService(patientsRepo, log)
	invoicesSvc := invoices.NewService(invoicesRepo, log)
	recordsSvc := clinicalrecords.NewService(recordsRepo, log)
	sessionsSvc := telemedicine.NewService(sessionsRepo, log)
	dianSvc := dian.NewService(dianRepo, dianClient, log)

	// Rutas por módulo
	r.Route("/api/v1", func(api chi.Router) {
		veterinarians.RegisterRoutes(api, vetsSvc)
		appointments.RegisterRoutes(api, appointmentsSvc)
		owners.RegisterRoutes(api, ownersSvc)
		patients.RegisterRoutes(api, patientsSvc)
		invoices.RegisterRoutes(api, invoicesSvc)
		clinicalrecords.RegisterRoutes(api, recordsSvc)
		telemedicine.RegisterRoutes(api, sessionsSvc)
		dian.RegisterRoutes(api, dianSvc)
	})

	return r
}
