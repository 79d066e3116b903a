package main

import (
	"fmt"
	"log"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the default staff accounts and starter content. Safe to run more than
// once; everything is created with FirstOrCreate.
func main() {
	storage.InitializeDB()

	seedUser("admin@benurse.com", "admin123", "Admin", models.RoleAdmin)
	seedUser("nurse@benurse.com", "nurse123", "Enfermera", models.RoleNurse)

	seedCategory("Información", "informacion", "Contenido educativo e informativo", 0)
	seedCategory("Prevención", "prevencion", "Recursos de prevención y cuidado", 1)

	seedPage("home", "Inicio", `{"title":"Bienvenido/a a BE NURSE","text":"Un espacio seguro para informarte y cuidarte."}`)
	seedPage("learn", "Infórmate", "")
	seedPage("take-care", "Cuídate", "")
	seedPage("about", "Sobre nosotros", "")

	seedSlide("Bienvenido a BE NURSE", "Tu espacio seguro para aprender sobre salud sexual", "Comenzar", "/learn", 0)
	seedSlide("Habla con un profesional", "Chatea de forma anónima con profesionales de enfermería", "Abrir chat", "/chat", 1)

	seedCard("Infórmate", "Aprende sobre salud sexual", "book", "/learn", 0)
	seedCard("Cuídate", "Recursos de prevención", "heart", "/take-care", 1)
	seedCard("Chat anónimo", "Habla con una enfermera", "chat", "/chat", 2)

	fmt.Println("Seed completed successfully!")
}

func seedUser(email, password, name, role string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password for %s: %v", email, err)
	}
	user := models.User{Email: email, Password: string(hashed), Name: name, Role: role}
	if err := storage.DB.Where("email = ?", email).FirstOrCreate(&user, models.User{Email: email}).Error; err != nil {
		log.Fatalf("Error seeding user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}

func seedCategory(name, slug, description string, order int) {
	category := models.Category{Name: name, Slug: slug, Description: description, Order: order}
	storage.DB.Where("slug = ?", slug).FirstOrCreate(&category, models.Category{Slug: slug})
}

func seedPage(slug, title, content string) {
	page := models.Page{Slug: slug, Title: title, Content: content, IsPublished: true}
	storage.DB.Where("slug = ?", slug).FirstOrCreate(&page, models.Page{Slug: slug})
}

func seedSlide(title, subtitle, ctaText, ctaLink string, order int) {
	slide := models.CarouselSlide{Title: title, Subtitle: subtitle, CTAText: ctaText, CTALink: ctaLink, Order: order, IsActive: true}
	storage.DB.Where("title = ?", title).FirstOrCreate(&slide, models.CarouselSlide{Title: title})
}

func seedCard(title, description, icon, link string, order int) {
	card := models.QuickAccessCard{Title: title, Description: description, Icon: icon, Link: link, Order: order, IsActive: true}
	storage.DB.Where("title = ?", title).FirstOrCreate(&card, models.QuickAccessCard{Title: title})
}
