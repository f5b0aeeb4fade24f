package archive

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"vidserve/logger"
)

// storeSFTP uploads the object to a remote host over SFTP. Auth is either a
// private key (base64 or raw PEM) or a password.
func (r *Replicator) storeSFTP(ctx context.Context, key string, reader io.Reader) error {
	if r.cfg.SFTPHost == "" || r.cfg.SFTPUser == "" {
		return fmt.Errorf("sftp archive requires host and user")
	}

	var auths []ssh.AuthMethod
	switch {
	case r.cfg.SFTPPrivateKey != "":
		keyBytes, err := base64.StdEncoding.DecodeString(r.cfg.SFTPPrivateKey)
		if err != nil {
			keyBytes = []byte(r.cfg.SFTPPrivateKey)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return fmt.Errorf("parse private key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	case r.cfg.SFTPPassword != "":
		auths = append(auths, ssh.Password(r.cfg.SFTPPassword))
	default:
		return fmt.Errorf("sftp archive requires a password or private key")
	}

	sshConfig := &ssh.ClientConfig{
		User:            r.cfg.SFTPUser,
		Auth:            auths,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	addr := net.JoinHostPort(r.cfg.SFTPHost, r.cfg.SFTPPort)
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial tcp %s: %w", addr, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		return fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	sshClient := ssh.NewClient(clientConn, chans, reqs)
	defer sshClient.Close()

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("create sftp client: %w", err)
	}
	defer sftpClient.Close()

	remotePath := path.Join(r.cfg.SFTPRemoteDir, key)
	if err := mkdirAllSFTP(sftpClient, path.Dir(remotePath)); err != nil {
		return fmt.Errorf("ensure remote dir %s: %w", path.Dir(remotePath), err)
	}

	f, err := sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create remote file %s: %w", remotePath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("copy to remote file %s: %w", remotePath, err)
	}

	logger.Infof("Archived '%s' to %s", remotePath, addr)
	return nil
}

// mkdirAllSFTP mimics os.MkdirAll on an SFTP server, creating each path
// segment in turn.
func mkdirAllSFTP(client *sftp.Client, dir string) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}

	cur := ""
	if strings.HasPrefix(dir, "/") {
		cur = "/"
	}
	for _, p := range strings.Split(dir, "/") {
		if p == "" {
			continue
		}
		cur = path.Join(cur, p)
		if _, err := client.Stat(cur); err != nil {
			if os.IsNotExist(err) {
				if err := client.Mkdir(cur); err != nil {
					return fmt.Errorf("mkdir %s: %w", cur, err)
				}
			} else {
				return fmt.Errorf("stat %s: %w", cur, err)
			}
		}
	}
	return nil
}
