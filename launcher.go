package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// healthURL: адрес проверки готовности локального сервера.
const healthURL = "http://127.0.0.1:5000/healthz"

// waitReady опрашивает /healthz, пока сервер не ответит 200.
func waitReady(ctx context.Context) error {
	hc := &http.Client{Timeout: time.Second}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		res, err := hc.Do(req)
		if err != nil {
			return err
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("healthz: %s", res.Status)
		}
		return nil
	}, backoff.WithContext(b, ctx))
}

func main() {
	fmt.Println("Запуск notebook...")

	clientName := "notebook"
	if runtime.GOOS == "windows" {
		clientName = "notebook.exe"
	}
	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	if err := waitReady(context.Background()); err != nil {
		fmt.Printf("Сервер не ответил на %s: %v\n", healthURL, err)
		_ = server.Process.Kill()
		return
	}

	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/notebook")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	fmt.Println("Сервер запущен")
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\notebook.exe")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./notebook")
	}

	_ = server.Wait()
}
