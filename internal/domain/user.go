package domain

type User struct {
	ID        string `bson:"id" json:"id"`
	Email     string `bson:"email" json:"email"`
	Name      string `bson:"name" json:"name"`
	Hash      string `bson:"password" json:"-"`
	IsAdmin   bool   `bson:"is_admin" json:"is_admin"`
	CreatedAt string `bson:"created_at" json:"created_at"`
}
