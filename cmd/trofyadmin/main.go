package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/trofybr/trofy-pedidos-api/admin"
	"github.com/trofybr/trofy-pedidos-api/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := admin.NewAPIClient(cfg.AdminAPIURL)
	ctx := context.Background()

	health, err := client.CheckHealth(ctx)
	if err != nil {
		log.Fatalf("Não foi possível conectar ao servidor (%s): %v", cfg.AdminAPIURL, err)
	}
	fmt.Printf("Conectado a %s (%s v%s)\n\n", cfg.AdminAPIURL, health.Service, health.Version)

	state := admin.NewState()
	if err := reload(ctx, client, state); err != nil {
		log.Fatalf("Não foi possível carregar os pedidos: %v", err)
	}
	admin.RenderTable(os.Stdout, state)
	printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "sair", "quit":
			return
		case "ajuda", "help":
			printHelp()
		case "refresh":
			if err := reload(ctx, client, state); err != nil {
				fmt.Printf("ERRO: não foi possível carregar os pedidos: %v\n", err)
				continue
			}
			fmt.Println("Lista de pedidos atualizada!")
			admin.RenderTable(os.Stdout, state)
		case "filtrar":
			state.Filtros.Status = arg
			state.ApplyFilters()
			admin.RenderTable(os.Stdout, state)
		case "buscar":
			state.Filtros.Busca = arg
			state.ApplyFilters()
			admin.RenderTable(os.Stdout, state)
		case "limpar":
			state.ResetFilters()
			admin.RenderTable(os.Stdout, state)
		case "prox", "next":
			if !state.ChangePage(1) {
				fmt.Println("Já está na última página.")
				continue
			}
			admin.RenderTable(os.Stdout, state)
		case "ant", "prev":
			if !state.ChangePage(-1) {
				fmt.Println("Já está na primeira página.")
				continue
			}
			admin.RenderTable(os.Stdout, state)
		case "ver":
			verPedido(ctx, client, state, arg)
		case "atualizar":
			atualizarPedido(ctx, client, state, arg, scanner)
		default:
			fmt.Printf("Comando desconhecido: %q (digite 'ajuda')\n", cmd)
		}
	}
}

func reload(ctx context.Context, client *admin.APIClient, state *admin.State) error {
	pedidos, err := client.ListPedidos(ctx)
	if err != nil {
		return err
	}
	state.Load(pedidos)
	return nil
}

func verPedido(ctx context.Context, client *admin.APIClient, state *admin.State, arg string) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Println("Uso: ver <id>")
		return
	}

	pedido := state.Select(uint(id))
	if pedido == nil {
		fmt.Printf("Pedido %d não encontrado na lista carregada.\n", id)
		return
	}

	admin.RenderDetail(os.Stdout, pedido)
	historico, err := client.History(ctx, pedido.ID)
	if err != nil {
		fmt.Printf("  Não foi possível carregar o histórico: %v\n", err)
		return
	}
	admin.RenderHistory(os.Stdout, historico)
}

func atualizarPedido(ctx context.Context, client *admin.APIClient, state *admin.State, arg string, scanner *bufio.Scanner) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Println("Uso: atualizar <id>")
		return
	}
	if state.Select(uint(id)) == nil {
		fmt.Printf("Pedido %d não encontrado na lista carregada.\n", id)
		return
	}

	status := prompt(scanner, "Novo status (vazio mantém o atual): ")
	rastreio := prompt(scanner, "Código de rastreio (vazio mantém o atual): ")

	resp, err := client.UpdateStatus(ctx, uint(id), optional(status), optional(rastreio))
	if err != nil {
		fmt.Printf("ERRO: não foi possível atualizar o status do pedido: %v\n", err)
		return
	}

	fmt.Printf("Status do pedido atualizado com sucesso! (planilha: %v, notificação: %v)\n",
		resp.Steps.Mirrored, resp.Steps.Notified)

	// Re-fetch so the table reflects the display-formatted server state
	if err := reload(ctx, client, state); err != nil {
		fmt.Printf("ERRO: não foi possível recarregar os pedidos: %v\n", err)
		return
	}
	admin.RenderTable(os.Stdout, state)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return cmd, ""
	}
	return cmd, strings.TrimSpace(parts[1])
}

func printHelp() {
	fmt.Println(`Comandos:
  filtrar <status>   filtra por status (ex.: filtrar Enviado)
  buscar <texto>     busca por nome, email ou telefone
  limpar             remove todos os filtros
  prox / ant         muda de página
  ver <id>           exibe os detalhes e o histórico de um pedido
  atualizar <id>     atualiza status e/ou código de rastreio
  refresh            recarrega a lista do servidor
  sair               encerra`)
}
