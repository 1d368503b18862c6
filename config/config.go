package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config lê uma variável de ambiente, carregando o .env na primeira chamada.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️ Arquivo .env não encontrado, usando variáveis de ambiente do sistema...")
		}
	})
	return os.Getenv(key)
}
