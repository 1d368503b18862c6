package constants

// Papéis das contas internas
const (
	ROLE_ADMIN = "ADMIN"
	ROLE_STAFF = "STAFF"
)

// Status de pedido
const (
	ORDER_PENDING   = "PENDING"
	ORDER_CONFIRMED = "CONFIRMED"
	ORDER_EXPIRED   = "EXPIRED"
)

// Status do vínculo com o cliente do gateway (Asaas)
const (
	GATEWAY_PENDING = "pending"
	GATEWAY_LINKED  = "linked"
	GATEWAY_FAILED  = "failed"
)

// Métodos de pagamento aceitos no checkout
const (
	PAYMENT_PIX         = "PIX"
	PAYMENT_CREDIT_CARD = "CREDIT_CARD"
)

// Eventos de webhook do Asaas que confirmam pagamento
const (
	EVENT_PAYMENT_CONFIRMED = "PAYMENT_CONFIRMED"
	EVENT_PAYMENT_RECEIVED  = "PAYMENT_RECEIVED"
)

// Mensagens de erro
const (
	ERROR_INTERNAL_ERROR       = "Ocorreu um erro interno."
	ERROR_PARSE_DATA_TO_LOCALS = "Erro ao recuperar dados da requisição."
	ERROR_CREATE               = "Erro ao criar registro."
	ERROR_EDIT                 = "Erro ao atualizar registro."
	ERROR_DELETE               = "Erro ao remover registro."
	MISSING_LOGIN_INPUT        = "E-mail e senha são obrigatórios."
	INVALID_EMAIL              = "E-mail não cadastrado."
	INVALID_PASSWORD           = "Senha incorreta."
	INVALID_USERNAME           = "Usuário não cadastrado."
	ACCOUNT_NOT_ACTIVE         = "Conta desativada."
	CAN_NOT_HASH_PASSWORD      = "Não foi possível processar a senha."
	EMAIL_ALREADY_EXISTS       = "Este endereço de e-mail já está em uso."
	WEAK_PASSWORD              = "A senha deve ter no mínimo 6 caracteres."
	MISSING_TOKEN              = "Token de autorização ausente ou mal formatado."
	INVALID_TOKEN              = "Token inválido ou expirado."
	PROFILE_NOT_FOUND          = "Perfil de usuário ou ID de cliente Asaas não encontrado."
)
