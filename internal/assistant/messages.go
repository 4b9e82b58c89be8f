package assistant

// User-facing reply texts. Errors are always rendered as friendly text; the
// process never surfaces a raw error to the chat.
const (
	msgGreeting = "Olá! 👋 Sou seu assistente financeiro pessoal.\n" +
		"Me envie uma movimentação como \"Mercado 120\" ou \"Ganhei 500\", ou pergunte algo sobre finanças!\n\n" +
		"Comandos:\n" +
		"/resumo hoje | semana | mes | dd/mm/aaaa a dd/mm/aaaa\n" +
		"/total — total por categoria\n" +
		"/limpar confirmar — apaga todos os seus dados"

	msgGenericError = "❌ Ocorreu um erro ao processar sua mensagem. Tente novamente em instantes."

	msgUnknownPeriod = "❓ Período não reconhecido. Use: /resumo hoje, /resumo semana, /resumo mes ou /resumo dd/mm/aaaa a dd/mm/aaaa."

	msgBadDateRange = "❓ Datas inválidas. Use o formato dd/mm/aaaa a dd/mm/aaaa, por exemplo: /resumo 01/05/2025 a 15/05/2025."

	msgPurgeWarning = "⚠️ Esse comando apaga TODAS as suas mensagens e movimentações, sem volta.\n" +
		"Para confirmar, envie: /limpar confirmar"

	msgPurgeDone = "🗑️ Pronto! Todos os seus dados foram apagados."

	msgUnknownCommand = "🤔 Não conheço esse comando. Envie /start para ver o que eu sei fazer."
)
