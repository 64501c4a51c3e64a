// Package main 提供 streamio 回显服务的命令行入口
//
// 服务端模式在 QUIC / TCP 地址上监听并回显每个流；
// 指定 -dial 时作为客户端，把标准输入发送给服务端并打印回显。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-streamio"
	"github.com/dep2p/go-streamio/internal/core/endpoint"
	"github.com/dep2p/go-streamio/pkg/lib/log"
)

var logger = log.Logger("streamio/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径")
	quicAddr    = flag.String("quic", "", "QUIC 监听地址，如 127.0.0.1:4433")
	tcpAddr     = flag.String("tcp", "", "TCP+yamux 监听地址，如 127.0.0.1:4434")
	idleTimeout = flag.Duration("idle", 0, "端点空闲超时（0 = 使用配置）")
	metricsAddr = flag.String("metrics", "", "Prometheus 指标 HTTP 地址")

	dial     = flag.String("dial", "", "客户端模式：protocol://host:port（quic 或 yamux）")
	insecure = flag.Bool("insecure", false, "客户端跳过 QUIC 证书校验")

	verbose = flag.Bool("v", false, "输出调试日志")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	opts, reg, err := buildOptions()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *dial != "" {
		return runClient(ctx, opts)
	}
	return runServer(ctx, opts, reg)
}

// buildOptions 构建选项
//
// 配置文件在前，命令行参数覆盖其中的对应字段。
func buildOptions() ([]streamio.Option, *prometheus.Registry, error) {
	var opts []streamio.Option
	if *configFile != "" {
		opts = append(opts, streamio.WithConfigFile(*configFile))
	}
	if *quicAddr != "" {
		opts = append(opts, streamio.WithQUICListenAddr(*quicAddr))
	}
	if *tcpAddr != "" {
		opts = append(opts, streamio.WithTCPListenAddr(*tcpAddr))
	}
	if *idleTimeout > 0 {
		opts = append(opts, streamio.WithIdleTimeout(*idleTimeout))
	}
	if *insecure {
		opts = append(opts, streamio.WithInsecureSkipVerify())
	}

	var reg *prometheus.Registry
	if *metricsAddr != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, streamio.WithMetricsRegisterer(reg))
	}

	if *dial != "" {
		protocol, _, err := parseTarget(*dial)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, streamio.WithTransports(protocol == streamio.ProtocolQUIC, protocol == streamio.ProtocolYamux))
	} else {
		if *quicAddr == "" && *tcpAddr == "" && *configFile == "" {
			return nil, nil, errors.New("服务端模式需要 -quic、-tcp 或 -config")
		}
		opts = append(opts, streamio.WithHandler(streamio.Echo))
	}
	return opts, reg, nil
}

// parseTarget 解析 protocol://host:port
func parseTarget(s string) (protocol, addr string, err error) {
	protocol, addr, ok := strings.Cut(s, "://")
	if !ok || addr == "" {
		return "", "", fmt.Errorf("无效的拨号目标 %q", s)
	}
	switch protocol {
	case streamio.ProtocolQUIC, streamio.ProtocolYamux:
		return protocol, addr, nil
	default:
		return "", "", fmt.Errorf("不支持的协议 %q", protocol)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 服务端
// ═══════════════════════════════════════════════════════════════════════════

func runServer(ctx context.Context, opts []streamio.Option, reg *prometheus.Registry) error {
	srv, err := streamio.Start(ctx, opts...)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = srv.Close() }()

	for _, addr := range srv.ListenAddrs() {
		fmt.Printf("监听 %s %s\n", addr.Network(), addr)
	}

	if reg != nil {
		metricsSrv := &http.Server{
			Addr:              *metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("指标服务退出", "error", err)
			}
		}()
		defer func() { _ = metricsSrv.Close() }()
		fmt.Printf("指标 http://%s/metrics\n", *metricsAddr)
	}

	fmt.Println("服务已启动，按 Ctrl+C 退出")
	<-ctx.Done()
	fmt.Println("\n正在关闭服务...")
	if stats, ok := srv.Bandwidth(); ok {
		fmt.Printf("已回显: 收 %d 字节, 发 %d 字节\n", stats.TotalIn, stats.TotalOut)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 客户端
// ═══════════════════════════════════════════════════════════════════════════

func runClient(ctx context.Context, opts []streamio.Option) error {
	protocol, addr, err := parseTarget(*dial)
	if err != nil {
		return err
	}

	cli, err := streamio.Start(ctx, opts...)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = cli.Close() }()

	sess, err := cli.Dial(ctx, protocol, addr)
	if err != nil {
		return err
	}
	ep, err := sess.OpenStream(ctx)
	if err != nil {
		return err
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("读取标准输入: %w", err)
	}

	replies := copyOut(ep, os.Stdout)
	bufs := net.Buffers{input}
	written := make(chan error, 1)
	ep.Write(func(err error) {
		if err == nil {
			ep.ShutdownOutput()
		}
		written <- err
	}, &bufs)

	select {
	case err := <-written:
		if err != nil {
			return fmt.Errorf("发送失败: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-replies:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// copyOut 把端点输入写到 w，输入结束后发送结果
func copyOut(ep *endpoint.StreamEndpoint, w io.Writer) <-chan error {
	done := make(chan error, 1)
	buf := make([]byte, 32*1024)

	var onReadable func(error)
	onReadable = func(err error) {
		if err != nil {
			done <- err
			return
		}
		for {
			n, err := ep.Fill(buf)
			if err != nil {
				done <- err
				return
			}
			if n == 0 {
				break
			}
			if _, err := w.Write(buf[:n]); err != nil {
				done <- err
				return
			}
		}
		if ep.IsInputShutdown() {
			done <- nil
			return
		}
		if err := ep.RegisterFillInterest(onReadable); err != nil {
			done <- err
		}
	}
	if err := ep.RegisterFillInterest(onReadable); err != nil {
		done <- err
	}
	return done
}
