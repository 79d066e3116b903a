package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ArticleHistoriaReal     = "HISTORIA_REAL"
	ArticleArticulo         = "ARTICULO"
	ArticleNoticia          = "NOTICIA"
	ArticlePreguntaIncomoda = "PREGUNTA_INCOMODA"
)

type Article struct {
	gorm.Model
	Title       string     `json:"title"`
	Slug        string     `json:"slug" gorm:"uniqueIndex"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content" gorm:"type:text"`
	ImageURL    string     `json:"imageUrl"`
	ArticleType string     `json:"articleType" gorm:"type:varchar(30);default:ARTICULO;index"` // HISTORIA_REAL, ARTICULO, NOTICIA, PREGUNTA_INCOMODA
	CategoryID  *uint      `json:"categoryID" gorm:"index"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags        []Tag      `json:"tags,omitempty" gorm:"many2many:article_tags"`
	IsPublished bool       `json:"isPublished" gorm:"default:false;index"`
	IsFeatured  bool       `json:"isFeatured" gorm:"default:false"`
	ViewCount   int64      `json:"viewCount" gorm:"default:0"`
	PublishedAt *time.Time `json:"publishedAt"`
}
