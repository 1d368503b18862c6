package helper

import (
	"crypto/rand"
	"math/big"
	"strings"

	"park_manager/model"

	"gorm.io/gorm"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCodePart(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// rand.Reader praticamente não falha; repete a posição zero
			sb.WriteByte(codeAlphabet[0])
			continue
		}
		sb.WriteByte(codeAlphabet[idx.Int64()])
	}
	return sb.String()
}

func ticketCodePrefix(itemId string) string {
	prefix := strings.ToUpper(itemId)
	prefix = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, prefix)
	if prefix == "" {
		prefix = "TKT"
	}
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return prefix
}

// GenerateTicketCode monta o código de resgate <prefixo>-<8 aleatórios> e
// só devolve um código que ainda não existe na tabela de ingressos.
func GenerateTicketCode(tx *gorm.DB, itemId string) string {
	prefix := ticketCodePrefix(itemId)

	var result string
	for {
		result = prefix + "-" + randomCodePart(8)

		var count int64
		tx.Model(&model.Ticket{}).
			Where("code = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
	}

	return result
}
