package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tutorconnect/tutorconnect/pkg/identity"
	"github.com/tutorconnect/tutorconnect/pkg/message"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

var sendCmd = &cobra.Command{
	Use:   "send <conversation-id>",
	Short: "Send a text message or file into a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().String("from", "", "Sender display name (required)")
	sendCmd.Flags().String("role", "", "Sender role (resolved from the live profile when omitted)")
	sendCmd.Flags().String("text", "", "Message text")
	sendCmd.Flags().String("attach", "", "Path of a file to upload and send")
	sendCmd.Flags().String("mime", "application/octet-stream", "MIME type of the attached file")
	_ = sendCmd.MarkFlagRequired("from")
}

func runSend(cmd *cobra.Command, args []string) error {
	conversationID := args[0]
	from, _ := cmd.Flags().GetString("from")
	roleFlag, _ := cmd.Flags().GetString("role")
	text, _ := cmd.Flags().GetString("text")
	attach, _ := cmd.Flags().GetString("attach")
	mime, _ := cmd.Flags().GetString("mime")

	if (text == "") == (attach == "") {
		return fmt.Errorf("exactly one of --text or --attach is required")
	}

	ledger, store, cleanup, err := openLedger()
	if err != nil {
		return err
	}
	defer cleanup()

	role, err := identity.NewResolver(store).ResolveWithOverride(from, types.Role(roleFlag))
	if err != nil {
		return err
	}

	conv, err := ledger.Conversations().Get(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return fmt.Errorf("conversation %s not found", conversationID)
	}
	receiver := conv.TutorName
	if role == types.RoleTutor {
		receiver = conv.StudentName
	}

	req := message.SendRequest{
		ConversationID: conversationID,
		SenderName:     from,
		SenderRole:     role,
		ReceiverName:   receiver,
		Message:        text,
		Type:           types.MessageTypeText,
	}

	if attach != "" {
		f, err := os.Open(attach)
		if err != nil {
			return err
		}
		defer f.Close()

		file, err := ledger.Messages().UploadFile(context.Background(), f, filepath.Base(attach), mime, conversationID)
		if err != nil {
			return err
		}
		req.Type = types.MessageTypeFile
		req.Message = ""
		req.FileURL = file.Data
		req.FileName = file.Name
		req.FileType = file.Type
		req.FileSize = file.Size
	}

	msg, err := ledger.Messages().Send(req)
	if err != nil {
		return err
	}
	fmt.Printf("Message %d sent to %s\n", msg.ID, receiver)
	return nil
}
